package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/sleep-science/internal/domain"
)

// historyEntry builds a UTC history entry whose wake time lands on the given
// fractional hour of day and whose stage minutes sum to sleepHours.
func historyEntry(userID uuid.UUID, date time.Time, wakeHour, sleepHours float64) domain.SleepHistoryEntry {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	wake := day.Add(time.Duration(wakeHour * float64(time.Hour)))
	bedtime := wake.Add(-time.Duration(sleepHours * float64(time.Hour)))

	return domain.SleepHistoryEntry{
		ID:                uuid.New(),
		UserID:            userID,
		Date:              day,
		Bedtime:           &bedtime,
		WakeTime:          &wake,
		LightSleepMinutes: int(sleepHours * 60),
		LocalTimezone:     "UTC",
	}
}

// daysAgo returns the UTC midnight of the day n days before now.
func daysAgo(n int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
