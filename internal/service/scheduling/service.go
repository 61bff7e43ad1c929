package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindwell/backend/internal/domain"
	"mindwell/backend/internal/store"
)

// Service is the appointment lifecycle manager. It is the only writer of
// appointment state: booking, payment confirmation, completion, cancellation
// and rescheduling all pass through here, and every slot-sensitive write runs
// its conflict check inside the provider's schedule transaction.
type Service struct {
	schedule store.ScheduleRepository
	appts    store.AppointmentRepository
}

func NewService(schedule store.ScheduleRepository, appts store.AppointmentRepository) *Service {
	return &Service{schedule: schedule, appts: appts}
}

// ResolveSlots returns the open, bookable windows for a provider on one
// calendar date, sorted by start time. An empty result with no configured
// availability means "not configured"; callers can tell the two apart via
// ListAvailability.
func (s *Service) ResolveSlots(ctx context.Context, providerID string, date time.Time) ([]domain.AvailabilityWindow, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, validationError("provider_id is required")
	}
	if date.IsZero() {
		return nil, validationError("date is required")
	}
	day := domain.DateOnly(date)

	windows, err := s.schedule.ListAvailability(ctx, providerID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.schedule.ListBlocks(ctx, providerID, day, day)
	if err != nil {
		return nil, err
	}
	appts, err := s.appts.ListForProvider(ctx, providerID, store.AppointmentFilter{
		Statuses: domain.LiveAppointmentStatuses,
		DateFrom: &day,
		DateTo:   &day,
	})
	if err != nil {
		return nil, err
	}

	return domain.ResolveOpenSlots(day, windows, blocks, appts, uuid.Nil), nil
}

type BookInput struct {
	ProviderID    string
	PatientID     string
	Date          time.Time
	StartTime     domain.TimeOfDay
	EndTime       domain.TimeOfDay
	AmountCents   int64
	PaymentMethod string
}

// Book creates an appointment in pending_payment after verifying the
// requested slot is open. The resolve-verify-insert unit runs under the
// provider's schedule lock; a lost race surfaces as ErrSlotUnavailable, never
// as a raw storage conflict.
func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	providerID := strings.TrimSpace(in.ProviderID)
	patientID := strings.TrimSpace(in.PatientID)
	if providerID == "" {
		return domain.Appointment{}, validationError("provider_id is required")
	}
	if patientID == "" {
		return domain.Appointment{}, validationError("patient_id is required")
	}
	if in.Date.IsZero() {
		return domain.Appointment{}, validationError("date is required")
	}
	if !in.StartTime.Valid() || !in.EndTime.Valid() {
		return domain.Appointment{}, validationError("start_time and end_time must be valid times of day")
	}
	if in.EndTime <= in.StartTime {
		return domain.Appointment{}, validationError("end_time must be after start_time")
	}
	if in.AmountCents < 0 {
		return domain.Appointment{}, validationError("amount must not be negative")
	}
	day := domain.DateOnly(in.Date)

	var out domain.Appointment
	err := s.appts.InProviderTransaction(ctx, providerID, func(ctx context.Context, tx store.ScheduleTx) error {
		open, err := resolveInTx(ctx, tx, providerID, day, uuid.Nil)
		if err != nil {
			return err
		}
		if !slotOffered(open, in.StartTime, in.EndTime) {
			return ErrSlotUnavailable
		}

		created, err := tx.InsertAppointment(ctx, domain.Appointment{
			ProviderID:         providerID,
			PatientID:          patientID,
			Date:               day,
			StartTime:          in.StartTime,
			EndTime:            in.EndTime,
			Status:             domain.AppointmentPendingPayment,
			PaymentStatus:      domain.PaymentPending,
			PaymentMethod:      strings.TrimSpace(in.PaymentMethod),
			PaymentAmountCents: in.AmountCents,
		})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.Appointment{}, ErrSlotUnavailable
		}
		return domain.Appointment{}, err
	}
	return out, nil
}

// ConfirmPayment moves a pending_payment appointment to confirmed and marks
// it paid.
func (s *Service) ConfirmPayment(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return s.transition(ctx, id, "confirm payment for", func(a *domain.Appointment) error {
		if a.Status != domain.AppointmentPendingPayment {
			return &InvalidTransitionError{Op: "confirm payment for", Status: a.Status}
		}
		a.Status = domain.AppointmentConfirmed
		a.PaymentStatus = domain.PaymentPaid
		return nil
	})
}

// Complete marks a confirmed appointment as completed.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return s.transition(ctx, id, "complete", func(a *domain.Appointment) error {
		if a.Status != domain.AppointmentConfirmed {
			return &InvalidTransitionError{Op: "complete", Status: a.Status}
		}
		a.Status = domain.AppointmentCompleted
		return nil
	})
}

// Cancel moves a live appointment to cancelled. The record is kept; only the
// status changes, which frees the slot for future resolution. Cancelling an
// already-terminal appointment fails with InvalidTransitionError.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return s.transition(ctx, id, "cancel", func(a *domain.Appointment) error {
		if !a.Status.IsLive() {
			return &InvalidTransitionError{Op: "cancel", Status: a.Status}
		}
		a.Status = domain.AppointmentCancelled
		return nil
	})
}

// Reschedule moves a live appointment to a new date and time. The target slot
// is resolved with the appointment itself excluded from the taken set, so it
// never conflicts with the slot it currently holds. Status and payment fields
// are untouched.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time, newStart, newEnd domain.TimeOfDay) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	if newDate.IsZero() {
		return domain.Appointment{}, validationError("date is required")
	}
	if !newStart.Valid() || !newEnd.Valid() {
		return domain.Appointment{}, validationError("start_time and end_time must be valid times of day")
	}
	if newEnd <= newStart {
		return domain.Appointment{}, validationError("end_time must be after start_time")
	}
	day := domain.DateOnly(newDate)

	appt, err := s.appts.GetAppointment(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}

	var out domain.Appointment
	err = s.appts.InProviderTransaction(ctx, appt.ProviderID, func(ctx context.Context, tx store.ScheduleTx) error {
		cur, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return err
		}
		if !cur.Status.IsLive() {
			return &InvalidTransitionError{Op: "reschedule", Status: cur.Status}
		}

		open, err := resolveInTx(ctx, tx, cur.ProviderID, day, cur.ID)
		if err != nil {
			return err
		}
		if !slotOffered(open, newStart, newEnd) {
			return ErrSlotUnavailable
		}

		cur.Date = day
		cur.StartTime = newStart
		cur.EndTime = newEnd
		updated, err := tx.UpdateAppointment(ctx, cur)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.Appointment{}, ErrSlotUnavailable
		}
		return domain.Appointment{}, err
	}
	return out, nil
}

func (s *Service) ListProviderAppointments(ctx context.Context, providerID string, filter store.AppointmentFilter) ([]domain.Appointment, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, validationError("provider_id is required")
	}
	return s.appts.ListForProvider(ctx, strings.TrimSpace(providerID), filter)
}

func (s *Service) ListPatientAppointments(ctx context.Context, patientID string, filter store.AppointmentFilter) ([]domain.Appointment, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, validationError("patient_id is required")
	}
	return s.appts.ListForPatient(ctx, strings.TrimSpace(patientID), filter)
}

// transition re-reads the appointment inside the provider transaction, runs
// the state check, and writes, so two concurrent transitions on the same
// appointment cannot both pass a stale check.
func (s *Service) transition(ctx context.Context, id uuid.UUID, op string, apply func(*domain.Appointment) error) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}

	appt, err := s.appts.GetAppointment(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}

	var out domain.Appointment
	err = s.appts.InProviderTransaction(ctx, appt.ProviderID, func(ctx context.Context, tx store.ScheduleTx) error {
		cur, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(&cur); err != nil {
			return err
		}
		updated, err := tx.UpdateAppointment(ctx, cur)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func resolveInTx(ctx context.Context, tx store.ScheduleTx, providerID string, date time.Time, exclude uuid.UUID) ([]domain.AvailabilityWindow, error) {
	windows, err := tx.ListAvailability(ctx, providerID)
	if err != nil {
		return nil, err
	}
	blocks, err := tx.ListBlocksOn(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	appts, err := tx.ListAppointmentsOn(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	return domain.ResolveOpenSlots(date, windows, blocks, appts, exclude), nil
}

func slotOffered(open []domain.AvailabilityWindow, start, end domain.TimeOfDay) bool {
	for _, w := range open {
		if w.StartTime == start && w.EndTime == end {
			return true
		}
	}
	return false
}
