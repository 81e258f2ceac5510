package service

import (
	"math"
	"sort"
)

// Shared numeric helpers for the circadian calculations. All hour values are
// fractional hours of day on the 24h clock unless noted otherwise.

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator).
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// wrapHour folds an hour value into [0, 24).
func wrapHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// hoursSince is the forward distance on the 24h clock from `from` to `h`.
func hoursSince(h, from float64) float64 {
	return wrapHour(h - from)
}

// inHourWindow reports whether h falls in the wrapped half-open window
// [start, end). A window whose end precedes its start crosses midnight.
func inHourWindow(h, start, end float64) bool {
	start, end, h = wrapHour(start), wrapHour(end), wrapHour(h)
	if start <= end {
		return h >= start && h < end
	}
	return h >= start || h < end
}

// midSleepHour is the hour-of-day midpoint between sleep onset and wake.
// A wake hour numerically before the onset means the sleep crossed midnight,
// so the wake hour is lifted by 24 before averaging; a midpoint past 24 is
// folded back onto the clock.
func midSleepHour(sleepStart, wake float64) float64 {
	if wake < sleepStart {
		wake += 24
	}
	mid := (sleepStart + wake) / 2
	if mid > 24 {
		mid -= 24
	}
	return mid
}
