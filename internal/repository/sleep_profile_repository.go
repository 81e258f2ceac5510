package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SleepProfileRepository persists derived sleep-science state. All mutations
// are single-row upserts (or appends) so concurrent recalculations for the
// same user converge to the last committed result.
type SleepProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.SleepProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.SleepProfile) error
	AppendCalculation(ctx context.Context, calc *domain.SleepNeedCalculation) error
	LatestCalculation(ctx context.Context, userID uuid.UUID) (*domain.SleepNeedCalculation, error)
	UpsertDayClassification(ctx context.Context, classification *domain.DayClassification) error
	ListDayClassifications(ctx context.Context, userID uuid.UUID) ([]domain.DayClassification, error)
	UpsertDailyNeed(ctx context.Context, need *domain.DailySleepNeed) error
	GetDailyNeed(ctx context.Context, userID uuid.UUID, date string) (*domain.DailySleepNeed, error)
}

type sleepProfileRepository struct {
	db *gorm.DB
}

func NewSleepProfileRepository(db *gorm.DB) SleepProfileRepository {
	return &sleepProfileRepository{db: db}
}

func (r *sleepProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.SleepProfile, error) {
	var profile domain.SleepProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *sleepProfileRepository) UpsertProfile(ctx context.Context, profile *domain.SleepProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"baseline_sleep_need", "method", "confidence", "based_on_days",
				"last_calculated", "sd_workday_hours", "sd_freeday_hours",
				"social_jetlag_hours", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *sleepProfileRepository) AppendCalculation(ctx context.Context, calc *domain.SleepNeedCalculation) error {
	return r.db.WithContext(ctx).Create(calc).Error
}

func (r *sleepProfileRepository) LatestCalculation(ctx context.Context, userID uuid.UUID) (*domain.SleepNeedCalculation, error) {
	var calc domain.SleepNeedCalculation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&calc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &calc, nil
}

func (r *sleepProfileRepository) UpsertDayClassification(ctx context.Context, classification *domain.DayClassification) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"classified_as", "mean_wake_hour", "variance_minutes", "sample_count", "updated_at",
			}),
		}).
		Create(classification).Error
}

func (r *sleepProfileRepository) ListDayClassifications(ctx context.Context, userID uuid.UUID) ([]domain.DayClassification, error) {
	var classifications []domain.DayClassification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weekday ASC").
		Find(&classifications).Error
	if err != nil {
		return nil, err
	}
	return classifications, nil
}

func (r *sleepProfileRepository) UpsertDailyNeed(ctx context.Context, need *domain.DailySleepNeed) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"baseline_hours", "debt_addition", "strain_addition", "nap_subtraction",
				"total_need_hours", "current_debt_hours", "calculated_at",
			}),
		}).
		Create(need).Error
}

func (r *sleepProfileRepository) GetDailyNeed(ctx context.Context, userID uuid.UUID, date string) (*domain.DailySleepNeed, error) {
	var need domain.DailySleepNeed
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&need).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &need, nil
}
