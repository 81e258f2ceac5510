package service

import (
	"time"

	"github.com/somnolab/sleep-science/internal/domain"
)

// DayStats is the classification outcome for a single weekday.
type DayStats struct {
	Type          domain.DayType
	MeanWakeHour  *float64
	StdDevMinutes *float64
	SampleCount   int
}

// DayClassifier buckets each weekday into workday or freeday from the spread
// of historical wake times. Weekday indexing follows time.Weekday (0=Sunday).
type DayClassifier struct {
	params Params
}

func NewDayClassifier(params Params) *DayClassifier {
	return &DayClassifier{params: params}
}

// Classify is best-effort: it always returns all 7 weekdays, falling back to
// the calendar default (Sat/Sun free, Mon-Fri work) where samples are thin.
func (c *DayClassifier) Classify(entries []domain.SleepHistoryEntry) map[time.Weekday]DayStats {
	wakeByDay := make(map[time.Weekday][]float64)
	for _, entry := range entries {
		wake := entry.WakeHour()
		if wake == nil {
			continue
		}
		weekday := entry.Date.Weekday()
		wakeByDay[weekday] = append(wakeByDay[weekday], *wake)
	}

	result := make(map[time.Weekday]DayStats, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		wakes := wakeByDay[weekday]
		stats := DayStats{
			Type:        defaultDayType(weekday),
			SampleCount: len(wakes),
		}

		if len(wakes) >= c.params.MinWeekdaySamples {
			meanWake := mean(wakes)
			spreadMinutes := sampleStdDev(wakes) * 60
			stats.MeanWakeHour = &meanWake
			stats.StdDevMinutes = &spreadMinutes
			if spreadMinutes > c.params.WakeVarianceThresholdMin {
				stats.Type = domain.DayTypeFreeday
			} else {
				stats.Type = domain.DayTypeWorkday
			}
		} else if len(wakes) > 0 {
			meanWake := mean(wakes)
			stats.MeanWakeHour = &meanWake
		}

		result[weekday] = stats
	}

	return result
}

func defaultDayType(weekday time.Weekday) domain.DayType {
	if weekday == time.Saturday || weekday == time.Sunday {
		return domain.DayTypeFreeday
	}
	return domain.DayTypeWorkday
}
