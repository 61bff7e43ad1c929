package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	AppointmentPendingPayment AppointmentStatus = "pending_payment"
	AppointmentConfirmed      AppointmentStatus = "confirmed"
	AppointmentCompleted      AppointmentStatus = "completed"
	AppointmentCancelled      AppointmentStatus = "cancelled"
)

// LiveAppointmentStatuses are the statuses that occupy a slot. Completed and
// cancelled appointments keep their rows but free the slot.
var LiveAppointmentStatuses = []AppointmentStatus{
	AppointmentPendingPayment,
	AppointmentConfirmed,
}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case AppointmentPendingPayment, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

func (s AppointmentStatus) IsLive() bool {
	return s == AppointmentPendingPayment || s == AppointmentConfirmed
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentProcessing, PaymentPaid:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID                 uuid.UUID         `bun:"id,pk,type:uuid"`
	ProviderID         string            `bun:"provider_id,notnull"`
	PatientID          string            `bun:"patient_id,notnull"`
	Date               time.Time         `bun:"date,notnull,type:date"`
	StartTime          TimeOfDay         `bun:"start_time,notnull,type:time"`
	EndTime            TimeOfDay         `bun:"end_time,notnull,type:time"`
	Status             AppointmentStatus `bun:"status,notnull"`
	PaymentStatus      PaymentStatus     `bun:"payment_status,notnull"`
	PaymentMethod      string            `bun:"payment_method,nullzero"`
	PaymentAmountCents int64             `bun:"payment_amount_cents,notnull"`
	CreatedAt          time.Time         `bun:"created_at,notnull"`
	UpdatedAt          time.Time         `bun:"updated_at,notnull"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
