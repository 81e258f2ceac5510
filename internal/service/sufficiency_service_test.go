package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
)

func newTestSufficiencyService() (SufficiencyService, *MockSleepHistoryRepository, *MockUserRepository) {
	historyRepo := NewMockSleepHistoryRepository()
	userRepo := NewMockUserRepository()
	s := NewSufficiencyService(historyRepo, userRepo, DefaultParams())
	return s, historyRepo, userRepo
}

// seedCalendarDays adds one timestamped entry per day going back from
// yesterday until the requested workday/free-day counts are reached.
func seedCalendarDays(repo *MockSleepHistoryRepository, userID uuid.UUID, workdays, freedays int) {
	day := 1
	for workdays > 0 || freedays > 0 {
		date := daysAgo(day)
		day++
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		if weekend && freedays > 0 {
			repo.entries = append(repo.entries, historyEntry(userID, date, 9.5, 8.5))
			freedays--
		} else if !weekend && workdays > 0 {
			repo.entries = append(repo.entries, historyEntry(userID, date, 6.5, 7))
			workdays--
		}
	}
}

func TestCheckSufficientHistory(t *testing.T) {
	s, historyRepo, userRepo := newTestSufficiencyService()
	userID := addUser(userRepo)
	seedCalendarDays(historyRepo, userID, 25, 10)

	result, err := s.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Sufficient {
		t.Fatalf("25 workdays / 10 free days should be sufficient: %+v", result)
	}
	if result.WorkdaysNeeded != 0 || result.FreedaysNeeded != 0 {
		t.Fatalf("sufficient history must need nothing more: %+v", result)
	}
	if result.ProjectedConfidence != domain.ConfidenceMedium {
		t.Fatalf("projected confidence = %s, want medium", result.ProjectedConfidence)
	}
	if !strings.Contains(result.Recommendation, "Enough sleep history") {
		t.Fatalf("unexpected recommendation: %q", result.Recommendation)
	}
}

func TestCheckInsufficientHistoryCountsGaps(t *testing.T) {
	s, historyRepo, userRepo := newTestSufficiencyService()
	userID := addUser(userRepo)
	seedCalendarDays(historyRepo, userID, 15, 6)

	result, err := s.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sufficient {
		t.Fatalf("15 workdays / 6 free days should not be sufficient")
	}
	if result.WorkdaysNeeded != 5 {
		t.Fatalf("workdays needed = %d, want 5", result.WorkdaysNeeded)
	}
	if result.FreedaysNeeded != 2 {
		t.Fatalf("free days needed = %d, want 2", result.FreedaysNeeded)
	}
	if result.ProjectedConfidence != domain.ConfidenceLow {
		t.Fatalf("projected confidence = %s, want low", result.ProjectedConfidence)
	}
	if !strings.Contains(result.Recommendation, "5 more workdays") || !strings.Contains(result.Recommendation, "2 more free days") {
		t.Fatalf("recommendation should name both gaps: %q", result.Recommendation)
	}
}

func TestCheckIgnoresEntriesWithoutTimestamps(t *testing.T) {
	s, historyRepo, userRepo := newTestSufficiencyService()
	userID := addUser(userRepo)

	// Thirty days of history, none with both timestamps.
	for i := 0; i < 30; i++ {
		entry := historyEntry(userID, daysAgo(i+1), 7, 7.5)
		entry.Bedtime = nil
		historyRepo.entries = append(historyRepo.entries, entry)
	}

	result, err := s.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkdayCount != 0 || result.FreedayCount != 0 {
		t.Fatalf("timestampless entries counted: %+v", result)
	}
	if result.TotalEntries != 30 {
		t.Fatalf("total entries = %d, want 30", result.TotalEntries)
	}
	if result.Sufficient {
		t.Fatalf("no usable entries cannot be sufficient")
	}
}

func TestCheckProjectsHighConfidence(t *testing.T) {
	s, historyRepo, userRepo := newTestSufficiencyService()
	userID := addUser(userRepo)
	seedCalendarDays(historyRepo, userID, 45, 18)

	result, err := s.Check(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProjectedConfidence != domain.ConfidenceHigh {
		t.Fatalf("projected confidence = %s, want high", result.ProjectedConfidence)
	}
}

func TestCheckUnknownUser(t *testing.T) {
	s, _, _ := newTestSufficiencyService()

	if _, err := s.Check(context.Background(), uuid.New()); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
