package service

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
)

// DebtService computes the recency-weighted rolling sleep debt.
type DebtService interface {
	// Compute calculates the user's current sleep debt over the trailing
	// debt window, using the stored baseline need (or the default).
	Compute(ctx context.Context, userID uuid.UUID) (*domain.DebtResult, error)
	// ComputeFromEntries is the pure calculation over an already-fetched
	// history snapshot; used by the daily-need and energy-curve services.
	ComputeFromEntries(entries []domain.SleepHistoryEntry, sleepNeed float64) *domain.DebtResult
}

type debtService struct {
	historyRepo repository.SleepHistoryRepository
	profileRepo repository.SleepProfileRepository
	userRepo    repository.UserRepository
	params      Params
}

func NewDebtService(
	historyRepo repository.SleepHistoryRepository,
	profileRepo repository.SleepProfileRepository,
	userRepo repository.UserRepository,
	params Params,
) DebtService {
	return &debtService{
		historyRepo: historyRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		params:      params,
	}
}

func (s *debtService) Compute(ctx context.Context, userID uuid.UUID) (*domain.DebtResult, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	sleepNeed := s.params.DefaultBaselineHours
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err == nil {
		sleepNeed = profile.BaselineSleepNeed
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	entries, err := s.historyRepo.ListRecent(ctx, userID, s.params.DebtWindowDays)
	if err != nil {
		return nil, err
	}

	return s.ComputeFromEntries(entries, sleepNeed), nil
}

func (s *debtService) ComputeFromEntries(entries []domain.SleepHistoryEntry, sleepNeed float64) *domain.DebtResult {
	result := &domain.DebtResult{
		Category:       domain.DebtCategoryLow,
		Breakdown:      []domain.DebtBreakdownDay{},
		Trend:          domain.DebtTrend{Direction: "stable", Change7dHours: 0},
		SleepNeedHours: sleepNeed,
	}

	if len(entries) == 0 {
		return result
	}

	// Most recent night first; recency index i drives the weight.
	sorted := make([]domain.SleepHistoryEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Date.After(sorted[b].Date)
	})
	if len(sorted) > s.params.DebtWindowDays {
		sorted = sorted[:s.params.DebtWindowDays]
	}

	var weightedSum, weightTotal float64
	for i, entry := range sorted {
		weight := s.dayWeight(i)
		day := domain.DebtBreakdownDay{
			Date:   entry.Date.Format("2006-01-02"),
			Weight: weight,
		}

		if tst := entry.TotalSleepHours(); tst != nil {
			deviation := sleepNeed - *tst
			day.TotalSleepHours = tst
			day.DeviationHours = &deviation
			day.WeightedDebt = math.Max(0, deviation) * weight

			weightedSum += day.WeightedDebt
			weightTotal += weight
		}

		result.Breakdown = append(result.Breakdown, day)
	}

	if weightTotal > 0 {
		result.CurrentDebtHours = round2(weightedSum / weightTotal)
	}
	result.Category = s.categorize(result.CurrentDebtHours)
	result.Trend = s.trend(result.Breakdown)
	if result.CurrentDebtHours > 0 {
		result.PaybackNights = int(math.Ceil(result.CurrentDebtHours))
	}

	return result
}

// dayWeight is the exponential recency weight e^(-lambda*i); weight(0)=1.
func (s *debtService) dayWeight(i int) float64 {
	return math.Exp(-s.params.DebtDecayLambda * float64(i))
}

func (s *debtService) categorize(debt float64) domain.DebtCategory {
	switch {
	case debt > s.params.DebtCriticalAbove:
		return domain.DebtCategoryCritical
	case debt > s.params.DebtHighAbove:
		return domain.DebtCategoryHigh
	case debt > s.params.DebtModerateAbove:
		return domain.DebtCategoryModerate
	default:
		return domain.DebtCategoryLow
	}
}

// trend compares the mean positive deviation of the most recent 7 nights
// against the 7 before them.
func (s *debtService) trend(breakdown []domain.DebtBreakdownDay) domain.DebtTrend {
	recentAvg := avgPositiveDeviation(breakdown, 0, 7)
	olderAvg := avgPositiveDeviation(breakdown, 7, 14)

	change := round2(recentAvg - olderAvg)
	direction := "stable"
	if change < -s.params.TrendStableBandHrs {
		direction = "improving"
	} else if change > s.params.TrendStableBandHrs {
		direction = "worsening"
	}

	return domain.DebtTrend{Direction: direction, Change7dHours: change}
}

func avgPositiveDeviation(breakdown []domain.DebtBreakdownDay, from, to int) float64 {
	sum := 0.0
	count := 0
	for i := from; i < to && i < len(breakdown); i++ {
		if breakdown[i].DeviationHours != nil && *breakdown[i].DeviationHours > 0 {
			sum += *breakdown[i].DeviationHours
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
