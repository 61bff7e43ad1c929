package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mindwell/backend/internal/domain"
)

// ScheduleRepository manages the provider-owned schedule configuration:
// recurring weekly availability windows and one-off date blocks. These are
// read-only from the booking engine's perspective; writes come from provider
// management calls and need no guard beyond single-statement atomicity.
type ScheduleRepository interface {
	ListAvailability(ctx context.Context, providerID string) ([]domain.AvailabilityWindow, error)
	CreateAvailability(ctx context.Context, window domain.AvailabilityWindow) (domain.AvailabilityWindow, error)
	DeleteAvailability(ctx context.Context, providerID string, windowID uuid.UUID) error
	SetAvailabilityEnabled(ctx context.Context, providerID string, windowID uuid.UUID, enabled bool) (domain.AvailabilityWindow, error)

	ListBlocks(ctx context.Context, providerID string, dateFrom, dateTo time.Time) ([]domain.ScheduleBlock, error)
	CreateBlock(ctx context.Context, block domain.ScheduleBlock) (domain.ScheduleBlock, error)
	DeleteBlock(ctx context.Context, providerID string, blockID uuid.UUID) error
}

// AppointmentFilter narrows appointment listings. Nil date bounds are open.
type AppointmentFilter struct {
	Statuses []domain.AppointmentStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

type AppointmentRepository interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	ListForProvider(ctx context.Context, providerID string, filter AppointmentFilter) ([]domain.Appointment, error)
	ListForPatient(ctx context.Context, patientID string, filter AppointmentFilter) ([]domain.Appointment, error)

	// InProviderTransaction runs fn inside a transaction holding the
	// provider's schedule lock. All booking-path reads and writes go through
	// the ScheduleTx so the read-validate-write unit is atomic with respect
	// to other units touching the same provider.
	InProviderTransaction(ctx context.Context, providerID string, fn func(ctx context.Context, tx ScheduleTx) error) error
}

type ScheduleTx interface {
	ListAvailability(ctx context.Context, providerID string) ([]domain.AvailabilityWindow, error)
	ListBlocksOn(ctx context.Context, providerID string, date time.Time) ([]domain.ScheduleBlock, error)
	ListAppointmentsOn(ctx context.Context, providerID string, date time.Time) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}
