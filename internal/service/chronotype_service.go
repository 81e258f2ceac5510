package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
)

// ChronotypeService classifies a user's natural sleep timing from their
// median wake hour over the chronotype window.
type ChronotypeService interface {
	Compute(ctx context.Context, userID uuid.UUID) (*domain.ChronotypeResult, error)
}

type chronotypeService struct {
	historyRepo repository.SleepHistoryRepository
	userRepo    repository.UserRepository
	params      Params
}

func NewChronotypeService(
	historyRepo repository.SleepHistoryRepository,
	userRepo repository.UserRepository,
	params Params,
) ChronotypeService {
	return &chronotypeService{
		historyRepo: historyRepo,
		userRepo:    userRepo,
		params:      params,
	}
}

func (s *chronotypeService) Compute(ctx context.Context, userID uuid.UUID) (*domain.ChronotypeResult, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.historyRepo.ListRecent(ctx, userID, s.params.ChronotypeWindowDays)
	if err != nil {
		return nil, err
	}

	var wakeHours, sleepHours []float64
	for _, entry := range entries {
		if wake := entry.WakeHour(); wake != nil {
			wakeHours = append(wakeHours, *wake)
		}
		if start := entry.SleepStartHour(); start != nil {
			sleepHours = append(sleepHours, *start)
		}
	}

	if len(entries) < s.params.ChronotypeMinEntries || len(wakeHours) < s.params.ChronotypeMinEntries {
		return &domain.ChronotypeResult{
			Success: false,
			Error:   domain.ErrCodeInsufficientData,
			Message: fmt.Sprintf("need at least %d days with wake times, have %d",
				s.params.ChronotypeMinEntries, len(wakeHours)),
		}, nil
	}

	medianWake := median(wakeHours)
	medianSleep := medianWake - s.params.DefaultSleepOffsetHours
	if len(sleepHours) > 0 {
		medianSleep = median(sleepHours)
	}
	medianSleep = wrapHour(medianSleep)

	nadir := wrapHour(medianWake - s.params.NadirOffsetHours)

	return &domain.ChronotypeResult{
		Success:         true,
		Chronotype:      s.classify(medianWake),
		MedianWakeHour:  round2(medianWake),
		MedianSleepHour: round2(medianSleep),
		NadirHour:       round2(nadir),
		AcrophaseHour:   round2(wrapHour(nadir + 12)),
		MelatoninWindow: &domain.HourWindow{
			StartHour: round2(wrapHour(medianSleep - s.params.MelatoninWindowHours)),
			EndHour:   round2(medianSleep),
		},
		Confidence:  s.confidence(len(wakeHours)),
		SampleCount: len(wakeHours),
		WindowDays:  s.params.ChronotypeWindowDays,
	}, nil
}

func (s *chronotypeService) classify(medianWakeHour float64) domain.Chronotype {
	if medianWakeHour < s.params.ChronotypeEarlyBefore {
		return domain.ChronotypeEarly
	}
	if medianWakeHour > s.params.ChronotypeLateAfter {
		return domain.ChronotypeLate
	}
	return domain.ChronotypeIntermediate
}

func (s *chronotypeService) confidence(samples int) domain.ConfidenceLevel {
	switch {
	case samples >= s.params.ChronotypeHighSamples:
		return domain.ConfidenceHigh
	case samples >= s.params.ChronotypeMediumSamples:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
