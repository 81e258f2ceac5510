package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
)

func newTestSleepHistoryService() (SleepHistoryService, *MockSleepHistoryRepository, *MockUserRepository) {
	historyRepo := NewMockSleepHistoryRepository()
	userRepo := NewMockUserRepository()
	s := NewSleepHistoryService(historyRepo, userRepo)
	return s, historyRepo, userRepo
}

func TestUpsertStoresEntry(t *testing.T) {
	s, historyRepo, userRepo := newTestSleepHistoryService()
	userID := uuid.New()
	userRepo.AddUser(&domain.User{ID: userID, Timezone: "Europe/Amsterdam"})

	bedtime := time.Date(2024, 1, 15, 22, 10, 0, 0, time.UTC)
	wake := time.Date(2024, 1, 16, 5, 40, 0, 0, time.UTC)
	score := 82

	entry, err := s.Upsert(context.Background(), userID, &domain.UpsertSleepHistoryRequest{
		Date:              "2024-01-16",
		Bedtime:           &bedtime,
		WakeTime:          &wake,
		DeepSleepMinutes:  85,
		LightSleepMinutes: 240,
		RemSleepMinutes:   95,
		AwakeMinutes:      20,
		DurationInSeconds: 27000,
		SleepScore:        &score,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Date.Format("2006-01-02") != "2024-01-16" {
		t.Fatalf("date = %v", entry.Date)
	}
	// Without an explicit entry timezone, the user's home timezone applies.
	if entry.LocalTimezone != "Europe/Amsterdam" {
		t.Fatalf("timezone = %q, want user's Europe/Amsterdam", entry.LocalTimezone)
	}
	if tst := entry.TotalSleepHours(); tst == nil || *tst != 7 {
		t.Fatalf("total sleep hours = %v, want 7 (420 stage minutes)", tst)
	}
	if len(historyRepo.entries) != 1 {
		t.Fatalf("entry not stored")
	}
}

func TestUpsertReplacesSameDate(t *testing.T) {
	s, historyRepo, userRepo := newTestSleepHistoryService()
	userID := uuid.New()
	userRepo.AddUser(&domain.User{ID: userID, Timezone: "UTC"})

	req := &domain.UpsertSleepHistoryRequest{Date: "2024-01-16", DurationInSeconds: 25200}
	if _, err := s.Upsert(context.Background(), userID, req); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	req.DurationInSeconds = 28800
	if _, err := s.Upsert(context.Background(), userID, req); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if len(historyRepo.entries) != 1 {
		t.Fatalf("expected one entry after re-ingest, got %d", len(historyRepo.entries))
	}
	if historyRepo.entries[0].DurationInSeconds != 28800 {
		t.Fatalf("re-ingest did not replace the snapshot: %+v", historyRepo.entries[0])
	}
}

func TestUpsertEntryTimezoneOverridesUser(t *testing.T) {
	s, _, userRepo := newTestSleepHistoryService()
	userID := uuid.New()
	userRepo.AddUser(&domain.User{ID: userID, Timezone: "Europe/Amsterdam"})

	tz := "Asia/Tokyo"
	entry, err := s.Upsert(context.Background(), userID, &domain.UpsertSleepHistoryRequest{
		Date:          "2024-01-16",
		LocalTimezone: &tz,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.LocalTimezone != "Asia/Tokyo" {
		t.Fatalf("timezone = %q, want entry override Asia/Tokyo", entry.LocalTimezone)
	}
}

func TestUpsertRejectsWakeBeforeBedtime(t *testing.T) {
	s, _, userRepo := newTestSleepHistoryService()
	userID := uuid.New()
	userRepo.AddUser(&domain.User{ID: userID, Timezone: "UTC"})

	bedtime := time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC)
	wake := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	_, err := s.Upsert(context.Background(), userID, &domain.UpsertSleepHistoryRequest{
		Date:     "2024-01-16",
		Bedtime:  &bedtime,
		WakeTime: &wake,
	})
	if err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpsertUnknownUser(t *testing.T) {
	s, _, _ := newTestSleepHistoryService()

	_, err := s.Upsert(context.Background(), uuid.New(), &domain.UpsertSleepHistoryRequest{Date: "2024-01-16"})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	s, historyRepo, userRepo := newTestSleepHistoryService()
	userID := uuid.New()
	userRepo.AddUser(&domain.User{ID: userID, Timezone: "UTC"})

	for i := 0; i < 5; i++ {
		historyRepo.entries = append(historyRepo.entries, historyEntry(userID, daysAgo(i+1), 7, 7.5))
	}

	response, err := s.List(context.Background(), userID, domain.SleepHistoryFilter{Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(response.Data) != 3 {
		t.Fatalf("page size = %d, want 3", len(response.Data))
	}
	if !response.Pagination.HasMore {
		t.Fatalf("expected more pages")
	}
	if response.Pagination.NextCursor == "" {
		t.Fatalf("expected a next cursor")
	}
}

func TestListUnknownUser(t *testing.T) {
	s, _, _ := newTestSleepHistoryService()

	if _, err := s.List(context.Background(), uuid.New(), domain.SleepHistoryFilter{}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
