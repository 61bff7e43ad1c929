package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AvailabilityWindow is a recurring weekly offer of time. DayOfWeek follows
// time.Weekday numbering: 0 is Sunday, 6 is Saturday.
type AvailabilityWindow struct {
	bun.BaseModel `bun:"table:availability_windows"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	ProviderID  string    `bun:"provider_id,notnull"`
	DayOfWeek   int       `bun:"day_of_week,notnull"`
	StartTime   TimeOfDay `bun:"start_time,notnull,type:time"`
	EndTime     TimeOfDay `bun:"end_time,notnull,type:time"`
	IsAvailable bool      `bun:"is_available,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (w *AvailabilityWindow) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if w.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			w.ID = id
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		if w.UpdatedAt.IsZero() {
			w.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		w.UpdatedAt = now
	}
	return nil
}

// ScheduleBlock is a one-off exception removing availability on a specific
// calendar date.
type ScheduleBlock struct {
	bun.BaseModel `bun:"table:schedule_blocks"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	ProviderID string    `bun:"provider_id,notnull"`
	BlockDate  time.Time `bun:"block_date,notnull,type:date"`
	StartTime  TimeOfDay `bun:"start_time,notnull,type:time"`
	EndTime    TimeOfDay `bun:"end_time,notnull,type:time"`
	Reason     string    `bun:"reason,nullzero"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

func (b *ScheduleBlock) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if b.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			b.ID = id
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		b.UpdatedAt = now
	}
	return nil
}
