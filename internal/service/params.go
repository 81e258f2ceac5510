package service

import "github.com/somnolab/sleep-science/internal/domain"

// Params is the immutable numeric configuration for the sleep science engine.
// Every threshold and model constant lives here so services stay free of
// inlined literals; construct with DefaultParams and inject.
type Params struct {
	// Baseline (MCTQ)
	MinBaselineEntries     int     // minimum history entries before any baseline runs
	TargetWorkdaySamples   int     // workday TST samples for a corrected calculation
	TargetFreedaySamples   int     // freeday TST samples for a corrected calculation
	HighConfWorkdays       int     // workday samples for "high" confidence
	HighConfFreedays       int     // freeday samples for "high" confidence
	MinPlausibleTSTHours   float64 // entries below this are discarded
	MaxPlausibleTSTHours   float64 // entries above this are discarded
	MinSleepNeedHours      float64 // baseline clamp floor
	MaxSleepNeedHours      float64 // baseline clamp ceiling
	DefaultBaselineHours   float64 // used before any baseline exists
	BaselineWindowDays     int     // default lookback for baseline runs

	// Day classification
	MinWeekdaySamples        int     // below this a weekday gets the default type
	WakeVarianceThresholdMin float64 // wake-time stddev above this marks a freeday

	// Sleep debt
	DebtDecayLambda    float64 // recency weight is e^(-lambda*i)
	DebtWindowDays     int
	DebtModerateAbove  float64 // category boundaries in hours
	DebtHighAbove      float64
	DebtCriticalAbove  float64
	TrendStableBandHrs float64 // |change| within the band reads as stable

	// Daily need composition
	DebtAdditionFactor  float64 // hours added per hour of debt
	MaxDebtAdditionHrs  float64
	DailyNeedHeadroomHrs float64 // composition may exceed the clamp ceiling by this much

	// Energy curve (two-process model)
	CurveWindowDays         int
	CurveMinSamples         int
	CurveStepHours          float64
	CurvePointCount         int
	NadirOffsetHours        float64 // nadir sits this many hours before median wake
	DefaultSleepOffsetHours float64 // assumed sleep onset before wake when unknown
	SleepPressureTauHours   float64 // process S decay constant while asleep
	WakePressureTauHours    float64 // process S rise constant while awake
	SleepPressureAmplitude  float64
	WakePressureAmplitude   float64
	HarmonicAmplitudes      [5]float64
	CircadianGain           float64 // energy contribution of process C
	HomeostaticGain         float64 // energy penalty of process S
	PeakEnergyThreshold     int
	DipEnergyThreshold      int
	DebtPenaltyFactor       float64 // percent energy penalty per hour of debt
	MaxDebtPenaltyPercent   float64
	MelatoninWindowHours    float64

	// Chronotype
	ChronotypeWindowDays    int
	ChronotypeMinEntries    int
	ChronotypeEarlyBefore   float64 // median wake hour below this is "early"
	ChronotypeLateAfter     float64 // median wake hour above this is "late"
	ChronotypeHighSamples   int
	ChronotypeMediumSamples int

	// Data sufficiency
	SufficiencyWindowDays int
}

// DefaultParams returns the engine's standard configuration.
func DefaultParams() Params {
	return Params{
		MinBaselineEntries:   14,
		TargetWorkdaySamples: 20,
		TargetFreedaySamples: 8,
		HighConfWorkdays:     40,
		HighConfFreedays:     16,
		MinPlausibleTSTHours: 3.0,
		MaxPlausibleTSTHours: 14.0,
		MinSleepNeedHours:    6.0,
		MaxSleepNeedHours:    10.0,
		DefaultBaselineHours: 8.25,
		BaselineWindowDays:   90,

		MinWeekdaySamples:        3,
		WakeVarianceThresholdMin: 45.0,

		DebtDecayLambda:    0.5,
		DebtWindowDays:     14,
		DebtModerateAbove:  2.0,
		DebtHighAbove:      5.0,
		DebtCriticalAbove:  8.0,
		TrendStableBandHrs: 0.25,

		DebtAdditionFactor:   0.25,
		MaxDebtAdditionHrs:   2.0,
		DailyNeedHeadroomHrs: 2.0,

		CurveWindowDays:         14,
		CurveMinSamples:         3,
		CurveStepHours:          0.25,
		CurvePointCount:         96,
		NadirOffsetHours:        2.0,
		DefaultSleepOffsetHours: 8.0,
		SleepPressureTauHours:   4.2,
		WakePressureTauHours:    18.2,
		SleepPressureAmplitude:  0.8,
		WakePressureAmplitude:   0.9,
		HarmonicAmplitudes:      [5]float64{0.97, 0.22, 0.07, 0.03, 0.001},
		CircadianGain:           100.0,
		HomeostaticGain:         40.0,
		PeakEnergyThreshold:     70,
		DipEnergyThreshold:      40,
		DebtPenaltyFactor:       3.0,
		MaxDebtPenaltyPercent:   30.0,
		MelatoninWindowHours:    2.0,

		ChronotypeWindowDays:    30,
		ChronotypeMinEntries:    7,
		ChronotypeEarlyBefore:   6.0,
		ChronotypeLateAfter:     8.0,
		ChronotypeHighSamples:   14,
		ChronotypeMediumSamples: 10,

		SufficiencyWindowDays: 90,
	}
}

// BaselineConfidence applies the tiered count thresholds shared by the
// baseline calculation and the sufficiency projection.
func (p Params) BaselineConfidence(workdayCount, freedayCount int) domain.ConfidenceLevel {
	switch {
	case workdayCount >= p.HighConfWorkdays && freedayCount >= p.HighConfFreedays:
		return domain.ConfidenceHigh
	case workdayCount >= p.TargetWorkdaySamples && freedayCount >= p.TargetFreedaySamples:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
