package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindwell/backend/internal/domain"
)

type AvailabilityInput struct {
	ProviderID string
	DayOfWeek  int
	StartTime  domain.TimeOfDay
	EndTime    domain.TimeOfDay
}

// AddAvailability creates a recurring weekly window, enabled by default.
func (s *Service) AddAvailability(ctx context.Context, in AvailabilityInput) (domain.AvailabilityWindow, error) {
	providerID := strings.TrimSpace(in.ProviderID)
	if providerID == "" {
		return domain.AvailabilityWindow{}, validationError("provider_id is required")
	}
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return domain.AvailabilityWindow{}, validationError("day_of_week must be between 0 and 6")
	}
	if !in.StartTime.Valid() || !in.EndTime.Valid() {
		return domain.AvailabilityWindow{}, validationError("start_time and end_time must be valid times of day")
	}
	if in.EndTime <= in.StartTime {
		return domain.AvailabilityWindow{}, validationError("end_time must be after start_time")
	}

	return s.schedule.CreateAvailability(ctx, domain.AvailabilityWindow{
		ProviderID:  providerID,
		DayOfWeek:   in.DayOfWeek,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: true,
	})
}

func (s *Service) RemoveAvailability(ctx context.Context, providerID string, windowID uuid.UUID) error {
	if strings.TrimSpace(providerID) == "" {
		return validationError("provider_id is required")
	}
	if windowID == uuid.Nil {
		return validationError("window_id is required")
	}
	return s.schedule.DeleteAvailability(ctx, strings.TrimSpace(providerID), windowID)
}

// ToggleAvailability flips a window on or off without deleting it.
func (s *Service) ToggleAvailability(ctx context.Context, providerID string, windowID uuid.UUID, enabled bool) (domain.AvailabilityWindow, error) {
	if strings.TrimSpace(providerID) == "" {
		return domain.AvailabilityWindow{}, validationError("provider_id is required")
	}
	if windowID == uuid.Nil {
		return domain.AvailabilityWindow{}, validationError("window_id is required")
	}
	return s.schedule.SetAvailabilityEnabled(ctx, strings.TrimSpace(providerID), windowID, enabled)
}

func (s *Service) ListAvailability(ctx context.Context, providerID string) ([]domain.AvailabilityWindow, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, validationError("provider_id is required")
	}
	return s.schedule.ListAvailability(ctx, strings.TrimSpace(providerID))
}

type BlockInput struct {
	ProviderID string
	BlockDate  time.Time
	StartTime  domain.TimeOfDay
	EndTime    domain.TimeOfDay
	Reason     string
}

// AddBlock records a one-off exception for a specific calendar date.
func (s *Service) AddBlock(ctx context.Context, in BlockInput) (domain.ScheduleBlock, error) {
	providerID := strings.TrimSpace(in.ProviderID)
	if providerID == "" {
		return domain.ScheduleBlock{}, validationError("provider_id is required")
	}
	if in.BlockDate.IsZero() {
		return domain.ScheduleBlock{}, validationError("block_date is required")
	}
	if !in.StartTime.Valid() || !in.EndTime.Valid() {
		return domain.ScheduleBlock{}, validationError("start_time and end_time must be valid times of day")
	}
	if in.EndTime <= in.StartTime {
		return domain.ScheduleBlock{}, validationError("end_time must be after start_time")
	}

	return s.schedule.CreateBlock(ctx, domain.ScheduleBlock{
		ProviderID: providerID,
		BlockDate:  domain.DateOnly(in.BlockDate),
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Reason:     strings.TrimSpace(in.Reason),
	})
}

func (s *Service) RemoveBlock(ctx context.Context, providerID string, blockID uuid.UUID) error {
	if strings.TrimSpace(providerID) == "" {
		return validationError("provider_id is required")
	}
	if blockID == uuid.Nil {
		return validationError("block_id is required")
	}
	return s.schedule.DeleteBlock(ctx, strings.TrimSpace(providerID), blockID)
}

func (s *Service) ListBlocks(ctx context.Context, providerID string, dateFrom, dateTo time.Time) ([]domain.ScheduleBlock, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, validationError("provider_id is required")
	}
	if dateTo.Before(dateFrom) {
		return nil, validationError("date_to must not be before date_from")
	}
	return s.schedule.ListBlocks(ctx, strings.TrimSpace(providerID), dateFrom, dateTo)
}
