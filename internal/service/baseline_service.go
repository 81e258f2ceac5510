package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BaselineService computes a user's ideal sleep need with the MCTQ
// workday/freeday contrast, falling back to an all-entries median when the
// per-bucket samples are too thin.
type BaselineService interface {
	// Calculate runs a full baseline calculation over the trailing window
	// and persists the outcome. An insufficient-data outcome is reported in
	// the result, not as an error; only persistence failures return errors.
	Calculate(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.BaselineResult, error)
	// Stats returns the stored profile, latest calculation run and weekday
	// classifications.
	Stats(ctx context.Context, userID uuid.UUID) (*domain.MCTQStatsResponse, error)
}

type baselineService struct {
	historyRepo repository.SleepHistoryRepository
	profileRepo repository.SleepProfileRepository
	userRepo    repository.UserRepository
	classifier  *DayClassifier
	params      Params
}

func NewBaselineService(
	historyRepo repository.SleepHistoryRepository,
	profileRepo repository.SleepProfileRepository,
	userRepo repository.UserRepository,
	params Params,
) BaselineService {
	return &baselineService{
		historyRepo: historyRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		classifier:  NewDayClassifier(params),
		params:      params,
	}
}

// tstEntry pairs a history entry with its plausible total sleep time.
type tstEntry struct {
	entry domain.SleepHistoryEntry
	tst   float64
}

func (s *baselineService) Calculate(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.BaselineResult, error) {
	tracer := otel.Tracer("sleep-science-api/baseline")
	ctx, span := tracer.Start(ctx, "BaselineService.Calculate",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.Int("window.days", windowDays),
		),
	)
	defer span.End()

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if windowDays < s.params.MinBaselineEntries {
		windowDays = s.params.BaselineWindowDays
	}

	entries, err := s.historyRepo.ListRecent(ctx, userID, windowDays)
	if err != nil {
		return nil, err
	}

	if len(entries) < s.params.MinBaselineEntries {
		span.SetAttributes(attribute.String("baseline.outcome", domain.ErrCodeInsufficientData))
		return &domain.BaselineResult{
			Success: false,
			Error:   domain.ErrCodeInsufficientData,
			Message: fmt.Sprintf("need at least %d days of sleep history, have %d",
				s.params.MinBaselineEntries, len(entries)),
		}, nil
	}

	dayStats := s.classifier.Classify(entries)

	// Keep only entries with a plausible total sleep time.
	var valid []tstEntry
	for _, entry := range entries {
		tst := entry.TotalSleepHours()
		if tst == nil || *tst < s.params.MinPlausibleTSTHours || *tst > s.params.MaxPlausibleTSTHours {
			continue
		}
		valid = append(valid, tstEntry{entry: entry, tst: *tst})
	}

	var workdays, freedays []tstEntry
	for _, v := range valid {
		if dayStats[v.entry.Date.Weekday()].Type == domain.DayTypeWorkday {
			workdays = append(workdays, v)
		} else {
			freedays = append(freedays, v)
		}
	}

	var result *domain.BaselineResult
	if len(workdays) < s.params.TargetWorkdaySamples/2 || len(freedays) < s.params.TargetFreedaySamples/2 {
		result = s.medianFallback(valid, len(workdays), len(freedays))
	} else {
		result = s.mctqCorrected(workdays, freedays)
	}

	start, end := dateRange(valid)
	result.DataStartDate = start.Format("2006-01-02")
	result.DataEndDate = end.Format("2006-01-02")

	if err := s.persist(ctx, userID, result, dayStats, start, end); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("baseline.method", string(result.Method)),
		attribute.Float64("baseline.sleep_need", result.BaselineSleepNeed),
		attribute.String("baseline.confidence", string(result.Confidence)),
	)

	return result, nil
}

func (s *baselineService) medianFallback(valid []tstEntry, workdayCount, freedayCount int) *domain.BaselineResult {
	tsts := make([]float64, len(valid))
	for i, v := range valid {
		tsts[i] = v.tst
	}

	need := clamp(median(tsts), s.params.MinSleepNeedHours, s.params.MaxSleepNeedHours)

	return &domain.BaselineResult{
		Success:           true,
		BaselineSleepNeed: round2(need),
		Method:            domain.MethodMedianFallback,
		Confidence:        domain.ConfidenceLow,
		WorkdayCount:      workdayCount,
		FreedayCount:      freedayCount,
		BasedOnDays:       len(valid),
	}
}

func (s *baselineService) mctqCorrected(workdays, freedays []tstEntry) *domain.BaselineResult {
	sdw := mean(tstValues(workdays))
	sdf := mean(tstValues(freedays))
	sdWeek := (5*sdw + 2*sdf) / 7

	// MCTQ correction: sleeping longer on free days signals accumulated
	// workday restriction, so the ideal lands between SDf and SDweek.
	idealNeed := sdWeek
	if sdf > sdw {
		idealNeed = sdf - (sdf-sdWeek)/2
	}
	need := clamp(idealNeed, s.params.MinSleepNeedHours, s.params.MaxSleepNeedHours)

	sdwR, sdfR, sdWeekR := round2(sdw), round2(sdf), round2(sdWeek)

	result := &domain.BaselineResult{
		Success:           true,
		BaselineSleepNeed: round2(need),
		Method:            domain.MethodMCTQCorrected,
		Confidence:        s.params.BaselineConfidence(len(workdays), len(freedays)),
		SDWorkdayHours:    &sdwR,
		SDFreedayHours:    &sdfR,
		SDWeekHours:       &sdWeekR,
		WorkdayCount:      len(workdays),
		FreedayCount:      len(freedays),
		BasedOnDays:       len(workdays) + len(freedays),
	}

	if jetlag := socialJetlag(workdays, freedays); jetlag != nil {
		rounded := round2(*jetlag)
		result.SocialJetlagHours = &rounded
	}

	return result
}

// socialJetlag is |MSF - MSW|: the gap between average mid-sleep on free days
// and workdays. Nil when either bucket has no entry with both timestamps.
func socialJetlag(workdays, freedays []tstEntry) *float64 {
	msw := avgMidSleep(workdays)
	msf := avgMidSleep(freedays)
	if msw == nil || msf == nil {
		return nil
	}

	jetlag := *msf - *msw
	if jetlag < 0 {
		jetlag = -jetlag
	}
	return &jetlag
}

func avgMidSleep(entries []tstEntry) *float64 {
	var mids []float64
	for _, v := range entries {
		start := v.entry.SleepStartHour()
		wake := v.entry.WakeHour()
		if start == nil || wake == nil {
			continue
		}
		mids = append(mids, midSleepHour(*start, *wake))
	}
	if len(mids) == 0 {
		return nil
	}
	avg := mean(mids)
	return &avg
}

func tstValues(entries []tstEntry) []float64 {
	values := make([]float64, len(entries))
	for i, v := range entries {
		values[i] = v.tst
	}
	return values
}

func dateRange(valid []tstEntry) (time.Time, time.Time) {
	if len(valid) == 0 {
		now := time.Now().UTC()
		return now, now
	}
	start, end := valid[0].entry.Date, valid[0].entry.Date
	for _, v := range valid[1:] {
		if v.entry.Date.Before(start) {
			start = v.entry.Date
		}
		if v.entry.Date.After(end) {
			end = v.entry.Date
		}
	}
	return start, end
}

// persist writes the profile, appends the audit row and upserts all 7 weekday
// classifications. Failures propagate: a result must not read as saved when
// the write did not commit.
func (s *baselineService) persist(
	ctx context.Context,
	userID uuid.UUID,
	result *domain.BaselineResult,
	dayStats map[time.Weekday]DayStats,
	dataStart, dataEnd time.Time,
) error {
	now := time.Now().UTC()

	profile := &domain.SleepProfile{
		UserID:            userID,
		BaselineSleepNeed: result.BaselineSleepNeed,
		Method:            result.Method,
		Confidence:        result.Confidence,
		BasedOnDays:       result.BasedOnDays,
		LastCalculated:    now,
		SDWorkdayHours:    result.SDWorkdayHours,
		SDFreedayHours:    result.SDFreedayHours,
		SocialJetlagHours: result.SocialJetlagHours,
	}
	if err := s.profileRepo.UpsertProfile(ctx, profile); err != nil {
		return err
	}

	calc := &domain.SleepNeedCalculation{
		UserID:            userID,
		Method:            result.Method,
		BaselineSleepNeed: result.BaselineSleepNeed,
		SDWorkdayHours:    result.SDWorkdayHours,
		SDFreedayHours:    result.SDFreedayHours,
		SDWeekHours:       result.SDWeekHours,
		SocialJetlagHours: result.SocialJetlagHours,
		Confidence:        result.Confidence,
		WorkdayCount:      result.WorkdayCount,
		FreedayCount:      result.FreedayCount,
		DataStartDate:     dataStart,
		DataEndDate:       dataEnd,
	}
	if err := s.profileRepo.AppendCalculation(ctx, calc); err != nil {
		return err
	}

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		stats := dayStats[weekday]
		classification := &domain.DayClassification{
			UserID:          userID,
			Weekday:         int(weekday),
			ClassifiedAs:    stats.Type,
			MeanWakeHour:    stats.MeanWakeHour,
			VarianceMinutes: stats.StdDevMinutes,
			SampleCount:     stats.SampleCount,
		}
		if err := s.profileRepo.UpsertDayClassification(ctx, classification); err != nil {
			return err
		}
	}

	return nil
}

func (s *baselineService) Stats(ctx context.Context, userID uuid.UUID) (*domain.MCTQStatsResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	response := &domain.MCTQStatsResponse{}

	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err == nil {
		response.Profile = profile
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	calc, err := s.profileRepo.LatestCalculation(ctx, userID)
	if err == nil {
		response.LatestCalculation = calc
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	classifications, err := s.profileRepo.ListDayClassifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	response.DayClassifications = classifications

	return response, nil
}
