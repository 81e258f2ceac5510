package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTotalSleepHours(t *testing.T) {
	tests := []struct {
		name  string
		entry SleepHistoryEntry
		want  *float64
	}{
		{
			name: "stage minutes win over duration",
			entry: SleepHistoryEntry{
				DeepSleepMinutes:  90,
				LightSleepMinutes: 240,
				RemSleepMinutes:   90,
				AwakeMinutes:      30,
				DurationInSeconds: 30000,
			},
			want: ptr(7.0),
		},
		{
			name:  "duration fallback",
			entry: SleepHistoryEntry{DurationInSeconds: 27000},
			want:  ptr(7.5),
		},
		{
			name:  "no data",
			entry: SleepHistoryEntry{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.TotalSleepHours()
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("TotalSleepHours = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("TotalSleepHours = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestAwakeMinutesExcludedFromTotal(t *testing.T) {
	entry := SleepHistoryEntry{
		LightSleepMinutes: 360,
		AwakeMinutes:      45,
	}
	if got := entry.TotalSleepHours(); got == nil || *got != 6 {
		t.Fatalf("TotalSleepHours = %v, want 6 (awake minutes excluded)", got)
	}
}

func TestWakeHourUsesLocalTimezone(t *testing.T) {
	// 05:30 UTC is 06:30 in Amsterdam (winter).
	wake := time.Date(2024, 1, 16, 5, 30, 0, 0, time.UTC)
	entry := SleepHistoryEntry{
		WakeTime:      &wake,
		LocalTimezone: "Europe/Amsterdam",
	}

	if got := entry.WakeHour(); got == nil || *got != 6.5 {
		t.Fatalf("WakeHour = %v, want 6.5", got)
	}

	entry.LocalTimezone = "UTC"
	if got := entry.WakeHour(); got == nil || *got != 5.5 {
		t.Fatalf("WakeHour = %v, want 5.5", got)
	}

	entry.WakeTime = nil
	if got := entry.WakeHour(); got != nil {
		t.Fatalf("WakeHour without timestamp = %v, want nil", got)
	}
}

func TestSleepStartHourInvalidTimezoneFallsBackToUTC(t *testing.T) {
	bedtime := time.Date(2024, 1, 15, 23, 15, 0, 0, time.UTC)
	entry := SleepHistoryEntry{
		Bedtime:       &bedtime,
		LocalTimezone: "Not/AZone",
	}
	if got := entry.SleepStartHour(); got == nil || *got != 23.25 {
		t.Fatalf("SleepStartHour = %v, want 23.25", got)
	}
}

func TestSleepHistoryToResponse(t *testing.T) {
	wake := time.Date(2024, 1, 16, 6, 40, 0, 0, time.UTC)
	entry := SleepHistoryEntry{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		Date:              time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		WakeTime:          &wake,
		LightSleepMinutes: 420,
		LocalTimezone:     "UTC",
	}

	resp := entry.ToResponse()
	if resp.Date != "2024-01-16" {
		t.Fatalf("date = %q", resp.Date)
	}
	if resp.TotalSleepHours == nil || *resp.TotalSleepHours != 7 {
		t.Fatalf("total sleep hours = %v, want 7", resp.TotalSleepHours)
	}
}

func ptr(v float64) *float64 { return &v }
