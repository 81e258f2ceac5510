package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
)

// StrainProvider supplies a training-load addition (hours) for a date.
// Upstream strain signals are not wired in yet; the default provider returns
// 0 and exists purely as the extension point future integrations plug into.
type StrainProvider func(ctx context.Context, userID uuid.UUID, date time.Time) float64

// NapProvider supplies a nap subtraction (hours) for a date. Same contract as
// StrainProvider: defaults to 0 until nap detection feeds it.
type NapProvider func(ctx context.Context, userID uuid.UUID, date time.Time) float64

func noStrain(context.Context, uuid.UUID, time.Time) float64 { return 0 }
func noNaps(context.Context, uuid.UUID, time.Time) float64   { return 0 }

// DailyNeedService composes the baseline and current debt into a single
// sleep-need target for a date.
type DailyNeedService interface {
	// GetDailyNeed computes and upserts the target for (user, date).
	// Idempotent: recomputing the same date with unchanged inputs overwrites
	// the stored row with identical values.
	GetDailyNeed(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailySleepNeed, error)
}

type dailyNeedService struct {
	historyRepo repository.SleepHistoryRepository
	profileRepo repository.SleepProfileRepository
	userRepo    repository.UserRepository
	debtService DebtService
	strain      StrainProvider
	naps        NapProvider
	params      Params
}

func NewDailyNeedService(
	historyRepo repository.SleepHistoryRepository,
	profileRepo repository.SleepProfileRepository,
	userRepo repository.UserRepository,
	debtService DebtService,
	params Params,
) DailyNeedService {
	return &dailyNeedService{
		historyRepo: historyRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		debtService: debtService,
		strain:      noStrain,
		naps:        noNaps,
		params:      params,
	}
}

func (s *dailyNeedService) GetDailyNeed(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailySleepNeed, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	baseline := s.params.DefaultBaselineHours
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err == nil {
		baseline = profile.BaselineSleepNeed
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	entries, err := s.historyRepo.ListRecent(ctx, userID, s.params.DebtWindowDays)
	if err != nil {
		return nil, err
	}
	debt := s.debtService.ComputeFromEntries(entries, baseline)

	debtAddition := debt.CurrentDebtHours * s.params.DebtAdditionFactor
	if debtAddition > s.params.MaxDebtAdditionHrs {
		debtAddition = s.params.MaxDebtAdditionHrs
	}
	strainAddition := s.strain(ctx, userID, date)
	napSubtraction := s.naps(ctx, userID, date)

	// Debt may push the target past the baseline ceiling, up to the headroom.
	totalNeed := clamp(
		baseline+strainAddition+debtAddition-napSubtraction,
		s.params.MinSleepNeedHours,
		s.params.MaxSleepNeedHours+s.params.DailyNeedHeadroomHrs,
	)

	need := &domain.DailySleepNeed{
		UserID:           userID,
		Date:             time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		BaselineHours:    round2(baseline),
		DebtAddition:     round2(debtAddition),
		StrainAddition:   round2(strainAddition),
		NapSubtraction:   round2(napSubtraction),
		TotalNeedHours:   round2(totalNeed),
		CurrentDebtHours: debt.CurrentDebtHours,
		CalculatedAt:     time.Now().UTC(),
	}

	if err := s.profileRepo.UpsertDailyNeed(ctx, need); err != nil {
		return nil, err
	}

	return need, nil
}
