package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"mindwell/backend/internal/domain"
	"mindwell/backend/internal/store"
)

type ScheduleRepo struct {
	db *bun.DB
}

func NewScheduleRepo(db *bun.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) ListAvailability(ctx context.Context, providerID string) ([]domain.AvailabilityWindow, error) {
	var rows []domain.AvailabilityWindow
	err := r.db.NewSelect().
		Model(&rows).
		Where("provider_id = ?", providerID).
		OrderExpr("day_of_week ASC, start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleRepo) CreateAvailability(ctx context.Context, window domain.AvailabilityWindow) (domain.AvailabilityWindow, error) {
	m := window
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.AvailabilityWindow{}, err
	}
	return m, nil
}

func (r *ScheduleRepo) DeleteAvailability(ctx context.Context, providerID string, windowID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.AvailabilityWindow)(nil)).
		Where("provider_id = ?", providerID).
		Where("id = ?", windowID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ScheduleRepo) SetAvailabilityEnabled(ctx context.Context, providerID string, windowID uuid.UUID, enabled bool) (domain.AvailabilityWindow, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.AvailabilityWindow)(nil)).
		Set("is_available = ?", enabled).
		Set("updated_at = ?", time.Now().UTC()).
		Where("provider_id = ?", providerID).
		Where("id = ?", windowID).
		Exec(ctx)
	if err != nil {
		return domain.AvailabilityWindow{}, err
	}
	if err := requireAffected(res); err != nil {
		return domain.AvailabilityWindow{}, err
	}

	var m domain.AvailabilityWindow
	err = r.db.NewSelect().
		Model(&m).
		Where("id = ?", windowID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AvailabilityWindow{}, store.ErrNotFound
		}
		return domain.AvailabilityWindow{}, err
	}
	return m, nil
}

func (r *ScheduleRepo) ListBlocks(ctx context.Context, providerID string, dateFrom, dateTo time.Time) ([]domain.ScheduleBlock, error) {
	var rows []domain.ScheduleBlock
	err := r.db.NewSelect().
		Model(&rows).
		Where("provider_id = ?", providerID).
		Where("block_date >= ?", domain.DateOnly(dateFrom)).
		Where("block_date <= ?", domain.DateOnly(dateTo)).
		OrderExpr("block_date ASC, start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleRepo) CreateBlock(ctx context.Context, block domain.ScheduleBlock) (domain.ScheduleBlock, error) {
	m := block
	m.BlockDate = domain.DateOnly(m.BlockDate)
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.ScheduleBlock{}, err
	}
	return m, nil
}

func (r *ScheduleRepo) DeleteBlock(ctx context.Context, providerID string, blockID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.ScheduleBlock)(nil)).
		Where("provider_id = ?", providerID).
		Where("id = ?", blockID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
