package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SleepHistoryRepository supplies the engine's read-only history snapshots and
// accepts upserts from the ingestion endpoint.
type SleepHistoryRepository interface {
	Upsert(ctx context.Context, entry *domain.SleepHistoryEntry) error
	// ListRecent returns entries from the trailing lookback window, most
	// recent date first.
	ListRecent(ctx context.Context, userID uuid.UUID, lookbackDays int) ([]domain.SleepHistoryEntry, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) ([]domain.SleepHistoryEntry, error)
}

type sleepHistoryRepository struct {
	db *gorm.DB
}

func NewSleepHistoryRepository(db *gorm.DB) SleepHistoryRepository {
	return &sleepHistoryRepository{db: db}
}

func (r *sleepHistoryRepository) Upsert(ctx context.Context, entry *domain.SleepHistoryEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"bedtime", "wake_time",
				"deep_sleep_minutes", "light_sleep_minutes", "rem_sleep_minutes", "awake_minutes",
				"duration_in_seconds", "sleep_score", "local_timezone", "updated_at",
			}),
		}).
		Create(entry).Error
}

func (r *sleepHistoryRepository) ListRecent(ctx context.Context, userID uuid.UUID, lookbackDays int) ([]domain.SleepHistoryEntry, error) {
	from := time.Now().UTC().AddDate(0, 0, -lookbackDays)

	var entries []domain.SleepHistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, from.Format("2006-01-02")).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sleepHistoryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) ([]domain.SleepHistoryEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if filter.From != nil {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// DESC order: continue below the cursor row
			query = query.Where(
				"(date < ?) OR (date = ? AND id < ?)",
				cursor.Date, cursor.Date, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.SleepHistoryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
