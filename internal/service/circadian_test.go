package service

import (
	"math"
	"testing"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7.5}, 7.5},
		{"odd", []float64{9, 7, 8}, 8},
		{"even", []float64{6, 7, 8, 9}, 7.5},
		{"unsorted input untouched", []float64{3, 1, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.values); got != tt.want {
				t.Fatalf("median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSampleStdDev(t *testing.T) {
	// Known sample: {2, 4, 4, 4, 5, 5, 7, 9} has sample stddev ~2.138
	got := sampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.1381) > 0.001 {
		t.Fatalf("sampleStdDev = %v, want ~2.1381", got)
	}

	if got := sampleStdDev([]float64{5}); got != 0 {
		t.Fatalf("single sample should have zero stddev, got %v", got)
	}
	if got := sampleStdDev([]float64{3, 3, 3}); got != 0 {
		t.Fatalf("constant samples should have zero stddev, got %v", got)
	}
}

func TestWrapHour(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{23.5, 23.5},
		{24, 0},
		{25.5, 1.5},
		{-1.5, 22.5},
		{-25, 23},
	}

	for _, tt := range tests {
		if got := wrapHour(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("wrapHour(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInHourWindow(t *testing.T) {
	tests := []struct {
		name             string
		h, start, end    float64
		want             bool
	}{
		{"inside plain window", 10, 9, 17, true},
		{"at start inclusive", 9, 9, 17, true},
		{"at end exclusive", 17, 9, 17, false},
		{"outside plain window", 8, 9, 17, false},
		{"inside midnight-crossing before midnight", 23.5, 23, 6.5, true},
		{"inside midnight-crossing after midnight", 2, 23, 6.5, true},
		{"outside midnight-crossing", 12, 23, 6.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inHourWindow(tt.h, tt.start, tt.end); got != tt.want {
				t.Fatalf("inHourWindow(%v, %v, %v) = %v, want %v", tt.h, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestMidSleepHour(t *testing.T) {
	tests := []struct {
		name              string
		sleepStart, wake  float64
		want              float64
	}{
		{"same-day afternoon nap", 13, 15, 14},
		{"cross-midnight", 23, 7, 3},
		{"cross-midnight late", 23.5, 6.5, 3},
		{"after-midnight onset", 1, 9, 5},
		{"midpoint folds past 24", 22, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := midSleepHour(tt.sleepStart, tt.wake); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("midSleepHour(%v, %v) = %v, want %v", tt.sleepStart, tt.wake, got, tt.want)
			}
		})
	}
}

func TestClampAndRound(t *testing.T) {
	if got := clamp(5.5, 6, 10); got != 6 {
		t.Fatalf("clamp below floor = %v, want 6", got)
	}
	if got := clamp(11, 6, 10); got != 10 {
		t.Fatalf("clamp above ceiling = %v, want 10", got)
	}
	if got := clamp(7.8, 6, 10); got != 7.8 {
		t.Fatalf("clamp inside range = %v, want 7.8", got)
	}
	if got := round2(7.816); got != 7.82 {
		t.Fatalf("round2(7.816) = %v, want 7.82", got)
	}
}
