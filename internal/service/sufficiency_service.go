package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
)

// SufficiencyService reports whether enough history exists for a reliable
// baseline calculation, and how much more is needed when it does not.
type SufficiencyService interface {
	Check(ctx context.Context, userID uuid.UUID) (*domain.SufficiencyResult, error)
}

type sufficiencyService struct {
	historyRepo repository.SleepHistoryRepository
	userRepo    repository.UserRepository
	params      Params
}

func NewSufficiencyService(
	historyRepo repository.SleepHistoryRepository,
	userRepo repository.UserRepository,
	params Params,
) SufficiencyService {
	return &sufficiencyService{
		historyRepo: historyRepo,
		userRepo:    userRepo,
		params:      params,
	}
}

func (s *sufficiencyService) Check(ctx context.Context, userID uuid.UUID) (*domain.SufficiencyResult, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.historyRepo.ListRecent(ctx, userID, s.params.SufficiencyWindowDays)
	if err != nil {
		return nil, err
	}

	// Calendar-default bucketing only; the variance-based reclassification
	// belongs to the baseline run itself.
	workdayCount, freedayCount := 0, 0
	for _, entry := range entries {
		if entry.Bedtime == nil || entry.WakeTime == nil {
			continue
		}
		if defaultDayType(entry.Date.Weekday()) == domain.DayTypeWorkday {
			workdayCount++
		} else {
			freedayCount++
		}
	}

	result := &domain.SufficiencyResult{
		Sufficient:          workdayCount >= s.params.TargetWorkdaySamples && freedayCount >= s.params.TargetFreedaySamples,
		TotalEntries:        len(entries),
		WorkdayCount:        workdayCount,
		FreedayCount:        freedayCount,
		ProjectedConfidence: s.params.BaselineConfidence(workdayCount, freedayCount),
	}

	if workdayCount < s.params.TargetWorkdaySamples {
		result.WorkdaysNeeded = s.params.TargetWorkdaySamples - workdayCount
	}
	if freedayCount < s.params.TargetFreedaySamples {
		result.FreedaysNeeded = s.params.TargetFreedaySamples - freedayCount
	}
	result.Recommendation = s.recommendation(result)

	return result, nil
}

func (s *sufficiencyService) recommendation(r *domain.SufficiencyResult) string {
	if r.Sufficient {
		return "Enough sleep history for a reliable baseline calculation."
	}

	msg := "Keep tracking:"
	if r.WorkdaysNeeded > 0 {
		msg += fmt.Sprintf(" %d more workdays", r.WorkdaysNeeded)
	}
	if r.FreedaysNeeded > 0 {
		if r.WorkdaysNeeded > 0 {
			msg += " and"
		}
		msg += fmt.Sprintf(" %d more free days", r.FreedaysNeeded)
	}
	return msg + " with complete sleep and wake timestamps are needed for a reliable baseline."
}
