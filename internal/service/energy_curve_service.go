package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EnergyCurveService generates a 24-hour alertness curve with the classical
// two-process model: homeostatic sleep pressure (S) against a multi-harmonic
// circadian oscillator (C), anchored to the user's median sleep/wake times.
type EnergyCurveService interface {
	Compute(ctx context.Context, userID uuid.UUID) (*domain.CurveResult, error)
}

type energyCurveService struct {
	historyRepo repository.SleepHistoryRepository
	profileRepo repository.SleepProfileRepository
	userRepo    repository.UserRepository
	debtService DebtService
	params      Params
	now         func() time.Time
}

func NewEnergyCurveService(
	historyRepo repository.SleepHistoryRepository,
	profileRepo repository.SleepProfileRepository,
	userRepo repository.UserRepository,
	debtService DebtService,
	params Params,
) EnergyCurveService {
	return &energyCurveService{
		historyRepo: historyRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		debtService: debtService,
		params:      params,
		now:         time.Now,
	}
}

func (s *energyCurveService) Compute(ctx context.Context, userID uuid.UUID) (*domain.CurveResult, error) {
	tracer := otel.Tracer("sleep-science-api/energy-curve")
	ctx, span := tracer.Start(ctx, "EnergyCurveService.Compute",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListRecent(ctx, userID, s.params.CurveWindowDays)
	if err != nil {
		return nil, err
	}

	var wakeHours, sleepHours []float64
	pairCount := 0
	for _, entry := range entries {
		wake := entry.WakeHour()
		start := entry.SleepStartHour()
		if wake != nil {
			wakeHours = append(wakeHours, *wake)
		}
		if start != nil {
			sleepHours = append(sleepHours, *start)
		}
		if wake != nil && start != nil {
			pairCount++
		}
	}

	if len(wakeHours) < s.params.CurveMinSamples || pairCount < s.params.CurveMinSamples {
		span.SetAttributes(attribute.String("curve.outcome", domain.ErrCodeInsufficientTimestampData))
		return &domain.CurveResult{
			Success: false,
			Error:   domain.ErrCodeInsufficientTimestampData,
			Message: fmt.Sprintf("need at least %d days with sleep and wake timestamps, have %d",
				s.params.CurveMinSamples, pairCount),
		}, nil
	}

	medianWake := median(wakeHours)
	medianSleep := medianWake - s.params.DefaultSleepOffsetHours
	if len(sleepHours) > 0 {
		medianSleep = median(sleepHours)
	}
	medianSleep = wrapHour(medianSleep)

	nadir := wrapHour(medianWake - s.params.NadirOffsetHours)
	acrophase := wrapHour(nadir + 12)

	baseline := s.params.DefaultBaselineHours
	if profile, err := s.profileRepo.GetProfile(ctx, userID); err == nil {
		baseline = profile.BaselineSleepNeed
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	debt := s.debtService.ComputeFromEntries(entries, baseline)

	debtPenalty := debt.CurrentDebtHours * s.params.DebtPenaltyFactor
	if debtPenalty > s.params.MaxDebtPenaltyPercent {
		debtPenalty = s.params.MaxDebtPenaltyPercent
	}

	points := s.generatePoints(medianSleep, medianWake, nadir, debtPenalty)

	loc := time.UTC
	if user.Timezone != "" {
		if l, err := time.LoadLocation(user.Timezone); err == nil {
			loc = l
		}
	}
	localNow := s.now().In(loc)
	nowHour := float64(localNow.Hour()) + float64(localNow.Minute())/60.0
	currentIdx := int(math.Round(nowHour/s.params.CurveStepHours)) % len(points)

	result := &domain.CurveResult{
		Success:            true,
		Points:             points,
		MedianWakeHour:     round2(medianWake),
		MedianSleepHour:    round2(medianSleep),
		NadirHour:          round2(nadir),
		AcrophaseHour:      round2(acrophase),
		DebtPenaltyPercent: round2(debtPenalty),
		Current:            &points[currentIdx],
		NextPeak:           s.scanForward(points, currentIdx, true),
		NextDip:            s.scanForward(points, currentIdx, false),
		MelatoninWindow: &domain.HourWindow{
			StartHour: round2(wrapHour(medianSleep - s.params.MelatoninWindowHours)),
			EndHour:   round2(medianSleep),
		},
	}

	span.SetAttributes(
		attribute.Float64("curve.median_wake_hour", result.MedianWakeHour),
		attribute.Float64("curve.debt_penalty_percent", result.DebtPenaltyPercent),
	)

	return result, nil
}

func (s *energyCurveService) generatePoints(sleepHour, wakeHour, nadir, debtPenalty float64) []domain.EnergyCurvePoint {
	windDownStart := wrapHour(sleepHour - s.params.MelatoninWindowHours)

	points := make([]domain.EnergyCurvePoint, s.params.CurvePointCount)
	for i := range points {
		hour := float64(i) * s.params.CurveStepHours
		asleep := inHourWindow(hour, sleepHour, wakeHour)

		processS := s.processS(hour, sleepHour, wakeHour, asleep)
		processC := s.processC(hour, nadir)

		energy := clamp(math.Round(processC*s.params.CircadianGain-processS*s.params.HomeostaticGain), 0, 100)
		energy = math.Round(energy * (1 - debtPenalty/100))

		points[i] = domain.EnergyCurvePoint{
			Hour:     hour,
			Energy:   int(energy),
			Zone:     s.zone(hour, int(energy), asleep, windDownStart, sleepHour),
			ProcessS: round2(processS),
			ProcessC: round2(processC),
		}
	}
	return points
}

// processS is homeostatic sleep pressure: it drains exponentially through the
// sleep window and rebuilds through the waking day.
func (s *energyCurveService) processS(hour, sleepHour, wakeHour float64, asleep bool) float64 {
	if asleep {
		hoursAsleep := hoursSince(hour, sleepHour)
		return s.params.SleepPressureAmplitude * math.Exp(-hoursAsleep/s.params.SleepPressureTauHours)
	}
	hoursAwake := hoursSince(hour, wakeHour)
	return 1 - s.params.WakePressureAmplitude*math.Exp(-hoursAwake/s.params.WakePressureTauHours)
}

// processC is the circadian drive: a 5-harmonic sine sum phase-locked to the
// alertness nadir, normalized into [0, 1].
func (s *energyCurveService) processC(hour, nadir float64) float64 {
	var sum, ampTotal float64
	for k, amp := range s.params.HarmonicAmplitudes {
		sum += amp * math.Sin(2*math.Pi*float64(k+1)*(hour-nadir)/24)
		ampTotal += amp
	}
	return (sum + ampTotal) / (2 * ampTotal)
}

func (s *energyCurveService) zone(hour float64, energy int, asleep bool, windDownStart, sleepHour float64) domain.EnergyZone {
	switch {
	case asleep:
		return domain.ZoneSleep
	case inHourWindow(hour, windDownStart, sleepHour):
		return domain.ZoneWindDown
	case energy >= s.params.PeakEnergyThreshold:
		return domain.ZonePeak
	case energy <= s.params.DipEnergyThreshold:
		return domain.ZoneDip
	default:
		return domain.ZoneRising
	}
}

// scanForward walks the curve from the current bucket looking for the next
// peak (threshold crossed on a local rise) or dip (crossed on a local fall).
func (s *energyCurveService) scanForward(points []domain.EnergyCurvePoint, fromIdx int, peak bool) *domain.EnergyCurvePoint {
	n := len(points)
	for step := 1; step < n; step++ {
		idx := (fromIdx + step) % n
		prev := points[(idx-1+n)%n]
		p := points[idx]

		if peak && p.Energy >= s.params.PeakEnergyThreshold && p.Energy > prev.Energy {
			return &points[idx]
		}
		if !peak && p.Energy <= s.params.DipEnergyThreshold && p.Energy < prev.Energy {
			return &points[idx]
		}
	}
	return nil
}
