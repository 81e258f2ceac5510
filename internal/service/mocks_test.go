package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (m *MockUserRepository) AddUser(user *domain.User) {
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

// MockSleepHistoryRepository is a mock implementation of SleepHistoryRepository
type MockSleepHistoryRepository struct {
	entries []domain.SleepHistoryEntry
	err     error
}

func NewMockSleepHistoryRepository() *MockSleepHistoryRepository {
	return &MockSleepHistoryRepository{}
}

func (m *MockSleepHistoryRepository) Upsert(ctx context.Context, entry *domain.SleepHistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	for i, existing := range m.entries {
		if existing.UserID == entry.UserID && existing.Date.Equal(entry.Date) {
			m.entries[i] = *entry
			return nil
		}
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MockSleepHistoryRepository) ListRecent(ctx context.Context, userID uuid.UUID, lookbackDays int) ([]domain.SleepHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	from := time.Now().UTC().AddDate(0, 0, -lookbackDays)
	var result []domain.SleepHistoryEntry
	for _, entry := range m.entries {
		if entry.UserID == userID && !entry.Date.Before(from.Truncate(24*time.Hour)) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *MockSleepHistoryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepHistoryFilter) ([]domain.SleepHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepHistoryEntry
	for _, entry := range m.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// MockSleepProfileRepository is a mock implementation of SleepProfileRepository
type MockSleepProfileRepository struct {
	profiles        map[uuid.UUID]*domain.SleepProfile
	calculations    []domain.SleepNeedCalculation
	classifications map[uuid.UUID]map[int]*domain.DayClassification
	dailyNeeds      map[string]*domain.DailySleepNeed
	err             error
}

func NewMockSleepProfileRepository() *MockSleepProfileRepository {
	return &MockSleepProfileRepository{
		profiles:        make(map[uuid.UUID]*domain.SleepProfile),
		classifications: make(map[uuid.UUID]map[int]*domain.DayClassification),
		dailyNeeds:      make(map[string]*domain.DailySleepNeed),
	}
}

func (m *MockSleepProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.SleepProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (m *MockSleepProfileRepository) UpsertProfile(ctx context.Context, profile *domain.SleepProfile) error {
	if m.err != nil {
		return m.err
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *MockSleepProfileRepository) AppendCalculation(ctx context.Context, calc *domain.SleepNeedCalculation) error {
	if m.err != nil {
		return m.err
	}
	calc.CreatedAt = time.Now()
	m.calculations = append(m.calculations, *calc)
	return nil
}

func (m *MockSleepProfileRepository) LatestCalculation(ctx context.Context, userID uuid.UUID) (*domain.SleepNeedCalculation, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := len(m.calculations) - 1; i >= 0; i-- {
		if m.calculations[i].UserID == userID {
			return &m.calculations[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSleepProfileRepository) UpsertDayClassification(ctx context.Context, classification *domain.DayClassification) error {
	if m.err != nil {
		return m.err
	}
	if m.classifications[classification.UserID] == nil {
		m.classifications[classification.UserID] = make(map[int]*domain.DayClassification)
	}
	m.classifications[classification.UserID][classification.Weekday] = classification
	return nil
}

func (m *MockSleepProfileRepository) ListDayClassifications(ctx context.Context, userID uuid.UUID) ([]domain.DayClassification, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.DayClassification
	for weekday := 0; weekday < 7; weekday++ {
		if c, ok := m.classifications[userID][weekday]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *MockSleepProfileRepository) UpsertDailyNeed(ctx context.Context, need *domain.DailySleepNeed) error {
	if m.err != nil {
		return m.err
	}
	key := need.UserID.String() + ":" + need.Date.Format("2006-01-02")
	m.dailyNeeds[key] = need
	return nil
}

func (m *MockSleepProfileRepository) GetDailyNeed(ctx context.Context, userID uuid.UUID, date string) (*domain.DailySleepNeed, error) {
	if m.err != nil {
		return nil, m.err
	}
	need, ok := m.dailyNeeds[userID.String()+":"+date]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return need, nil
}
