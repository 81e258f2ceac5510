package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
)

// MockSleepHistoryService is a mock implementation of service.SleepHistoryService
type MockSleepHistoryService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, req *domain.UpsertSleepHistoryRequest) (*domain.SleepHistoryEntry, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) (*domain.SleepHistoryListResponse, error)
}

func (m *MockSleepHistoryService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertSleepHistoryRequest) (*domain.SleepHistoryEntry, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, req)
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	return &domain.SleepHistoryEntry{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		LocalTimezone: "UTC",
	}, nil
}

func (m *MockSleepHistoryService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) (*domain.SleepHistoryListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepHistoryListResponse{Data: []domain.SleepHistoryResponse{}}, nil
}

// MockBaselineService is a mock implementation of service.BaselineService
type MockBaselineService struct {
	calculateFunc func(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.BaselineResult, error)
	statsFunc     func(ctx context.Context, userID uuid.UUID) (*domain.MCTQStatsResponse, error)
}

func (m *MockBaselineService) Calculate(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.BaselineResult, error) {
	if m.calculateFunc != nil {
		return m.calculateFunc(ctx, userID, windowDays)
	}
	return &domain.BaselineResult{
		Success:           true,
		BaselineSleepNeed: 7.8,
		Method:            domain.MethodMCTQCorrected,
		Confidence:        domain.ConfidenceMedium,
	}, nil
}

func (m *MockBaselineService) Stats(ctx context.Context, userID uuid.UUID) (*domain.MCTQStatsResponse, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, userID)
	}
	return &domain.MCTQStatsResponse{}, nil
}

// MockDebtService is a mock implementation of service.DebtService
type MockDebtService struct {
	computeFunc func(ctx context.Context, userID uuid.UUID) (*domain.DebtResult, error)
}

func (m *MockDebtService) Compute(ctx context.Context, userID uuid.UUID) (*domain.DebtResult, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID)
	}
	return &domain.DebtResult{Category: domain.DebtCategoryLow, SleepNeedHours: 8}, nil
}

func (m *MockDebtService) ComputeFromEntries(entries []domain.SleepHistoryEntry, sleepNeed float64) *domain.DebtResult {
	return &domain.DebtResult{Category: domain.DebtCategoryLow, SleepNeedHours: sleepNeed}
}

// MockDailyNeedService is a mock implementation of service.DailyNeedService
type MockDailyNeedService struct {
	getFunc func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailySleepNeed, error)
}

func (m *MockDailyNeedService) GetDailyNeed(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailySleepNeed, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, date)
	}
	return &domain.DailySleepNeed{
		UserID:         userID,
		Date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		BaselineHours:  8.25,
		TotalNeedHours: 8.25,
		CalculatedAt:   time.Now().UTC(),
	}, nil
}

// MockEnergyCurveService is a mock implementation of service.EnergyCurveService
type MockEnergyCurveService struct {
	computeFunc func(ctx context.Context, userID uuid.UUID) (*domain.CurveResult, error)
}

func (m *MockEnergyCurveService) Compute(ctx context.Context, userID uuid.UUID) (*domain.CurveResult, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID)
	}
	return &domain.CurveResult{Success: true}, nil
}

// MockChronotypeService is a mock implementation of service.ChronotypeService
type MockChronotypeService struct {
	computeFunc func(ctx context.Context, userID uuid.UUID) (*domain.ChronotypeResult, error)
}

func (m *MockChronotypeService) Compute(ctx context.Context, userID uuid.UUID) (*domain.ChronotypeResult, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID)
	}
	return &domain.ChronotypeResult{Success: true, Chronotype: domain.ChronotypeIntermediate}, nil
}

// MockSufficiencyService is a mock implementation of service.SufficiencyService
type MockSufficiencyService struct {
	checkFunc func(ctx context.Context, userID uuid.UUID) (*domain.SufficiencyResult, error)
}

func (m *MockSufficiencyService) Check(ctx context.Context, userID uuid.UUID) (*domain.SufficiencyResult, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, userID)
	}
	return &domain.SufficiencyResult{Sufficient: true}, nil
}
