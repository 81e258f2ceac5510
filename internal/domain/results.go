package domain

import "time"

// Error codes for tagged computation results. Insufficient data is a
// reportable outcome, not a fault: callers show a "collect more data" message
// and the HTTP status stays 200.
const (
	ErrCodeInsufficientData          = "insufficient_data"
	ErrCodeInsufficientTimestampData = "insufficient_timestamp_data"
)

// BaselineResult is the outcome of one baseline sleep-need calculation.
// @Description MCTQ baseline calculation result.
type BaselineResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty" example:"insufficient_data"`
	Message string `json:"message,omitempty"`

	BaselineSleepNeed float64         `json:"baseline_sleep_need,omitempty" example:"7.8"`
	Method            BaselineMethod  `json:"method,omitempty" example:"mctq_corrected"`
	Confidence        ConfidenceLevel `json:"confidence,omitempty" example:"medium"`
	SDWorkdayHours    *float64        `json:"sd_workday_hours,omitempty"`
	SDFreedayHours    *float64        `json:"sd_freeday_hours,omitempty"`
	SDWeekHours       *float64        `json:"sd_week_hours,omitempty"`
	SocialJetlagHours *float64        `json:"social_jetlag_hours,omitempty"`
	WorkdayCount      int             `json:"workday_count,omitempty"`
	FreedayCount      int             `json:"freeday_count,omitempty"`
	BasedOnDays       int             `json:"based_on_days,omitempty"`
	DataStartDate     string          `json:"data_start_date,omitempty" example:"2024-01-01"`
	DataEndDate       string          `json:"data_end_date,omitempty" example:"2024-03-31"`
}

// DebtCategory buckets a sleep-debt value by severity.
type DebtCategory string

const (
	DebtCategoryLow      DebtCategory = "low"
	DebtCategoryModerate DebtCategory = "moderate"
	DebtCategoryHigh     DebtCategory = "high"
	DebtCategoryCritical DebtCategory = "critical"
)

// DebtBreakdownDay is one night's contribution to the weighted debt.
type DebtBreakdownDay struct {
	Date            string   `json:"date" example:"2024-01-16"`
	TotalSleepHours *float64 `json:"total_sleep_hours,omitempty" example:"6.5"`
	DeviationHours  *float64 `json:"deviation_hours,omitempty" example:"1.3"`
	Weight          float64  `json:"weight" example:"0.6065"`
	WeightedDebt    float64  `json:"weighted_debt" example:"0.7885"`
}

// DebtTrend compares the most recent week against the one before it.
type DebtTrend struct {
	// improving, worsening or stable
	Direction     string  `json:"direction" example:"stable"`
	Change7dHours float64 `json:"change_7d_hours" example:"-0.12"`
}

// DebtResult is the recency-weighted rolling sleep debt over the last 14 days.
// @Description Rolling sleep debt with per-night breakdown.
type DebtResult struct {
	CurrentDebtHours float64            `json:"current_debt_hours" example:"2.35"`
	Category         DebtCategory       `json:"category" example:"moderate"`
	Breakdown        []DebtBreakdownDay `json:"breakdown"`
	Trend            DebtTrend          `json:"trend"`
	PaybackNights    int                `json:"payback_nights" example:"3"`
	SleepNeedHours   float64            `json:"sleep_need_hours" example:"7.8"`
}

// EnergyZone labels a point on the 24h energy curve.
type EnergyZone string

const (
	ZoneSleep    EnergyZone = "sleep"
	ZoneWindDown EnergyZone = "wind-down"
	ZonePeak     EnergyZone = "peak"
	ZoneDip      EnergyZone = "dip"
	ZoneRising   EnergyZone = "rising"
)

// EnergyCurvePoint is one 15-minute sample of predicted alertness.
type EnergyCurvePoint struct {
	Hour     float64    `json:"hour" example:"14.25"`
	Energy   int        `json:"energy" example:"68"`
	Zone     EnergyZone `json:"zone" example:"rising"`
	ProcessS float64    `json:"process_s" example:"0.42"`
	ProcessC float64    `json:"process_c" example:"0.71"`
}

// HourWindow is a wrapped [start, end) window on the 24h clock.
type HourWindow struct {
	StartHour float64 `json:"start_hour" example:"21.5"`
	EndHour   float64 `json:"end_hour" example:"23.5"`
}

// CurveResult is a full-day two-process energy curve.
// @Description 96-point energy/alertness curve at 15-minute resolution.
type CurveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty" example:"insufficient_timestamp_data"`
	Message string `json:"message,omitempty"`

	Points             []EnergyCurvePoint `json:"points,omitempty"`
	MedianWakeHour     float64            `json:"median_wake_hour,omitempty" example:"6.5"`
	MedianSleepHour    float64            `json:"median_sleep_hour,omitempty" example:"23.25"`
	NadirHour          float64            `json:"nadir_hour,omitempty" example:"4.5"`
	AcrophaseHour      float64            `json:"acrophase_hour,omitempty" example:"16.5"`
	DebtPenaltyPercent float64            `json:"debt_penalty_percent" example:"7.5"`
	Current            *EnergyCurvePoint  `json:"current,omitempty"`
	NextPeak           *EnergyCurvePoint  `json:"next_peak,omitempty"`
	NextDip            *EnergyCurvePoint  `json:"next_dip,omitempty"`
	MelatoninWindow    *HourWindow        `json:"melatonin_window,omitempty"`
}

// Chronotype classifies natural sleep/wake timing.
type Chronotype string

const (
	ChronotypeEarly        Chronotype = "early"
	ChronotypeIntermediate Chronotype = "intermediate"
	ChronotypeLate         Chronotype = "late"
)

// ChronotypeResult is the outcome of a chronotype classification.
// @Description Chronotype classification with circadian phase estimates.
type ChronotypeResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty" example:"insufficient_data"`
	Message string `json:"message,omitempty"`

	Chronotype      Chronotype      `json:"chronotype,omitempty" example:"intermediate"`
	MedianWakeHour  float64         `json:"median_wake_hour,omitempty" example:"7.0"`
	MedianSleepHour float64         `json:"median_sleep_hour,omitempty" example:"23.5"`
	NadirHour       float64         `json:"nadir_hour,omitempty" example:"5.0"`
	AcrophaseHour   float64         `json:"acrophase_hour,omitempty" example:"17.0"`
	MelatoninWindow *HourWindow     `json:"melatonin_window,omitempty"`
	Confidence      ConfidenceLevel `json:"confidence,omitempty" example:"high"`
	SampleCount     int             `json:"sample_count,omitempty" example:"22"`
	WindowDays      int             `json:"window_days,omitempty" example:"30"`
}

// SufficiencyResult reports whether enough history exists for a reliable
// baseline calculation.
// @Description Data sufficiency check for the baseline calculation.
type SufficiencyResult struct {
	Sufficient          bool            `json:"sufficient" example:"false"`
	TotalEntries        int             `json:"total_entries" example:"21"`
	WorkdayCount        int             `json:"workday_count" example:"15"`
	FreedayCount        int             `json:"freeday_count" example:"6"`
	WorkdaysNeeded      int             `json:"workdays_needed" example:"5"`
	FreedaysNeeded      int             `json:"freedays_needed" example:"2"`
	ProjectedConfidence ConfidenceLevel `json:"projected_confidence" example:"low"`
	Recommendation      string          `json:"recommendation"`
}

// MCTQStatsResponse bundles the stored baseline state for a user.
// @Description Current profile, latest calculation run and weekday classifications.
type MCTQStatsResponse struct {
	Profile            *SleepProfile         `json:"profile,omitempty"`
	LatestCalculation  *SleepNeedCalculation `json:"latest_calculation,omitempty"`
	DayClassifications []DayClassification   `json:"day_classifications"`
}

// DailyNeedResponse is the response body for the daily-need endpoint.
// @Description Composed sleep-need target for one date.
type DailyNeedResponse struct {
	UserID           string  `json:"user_id"`
	Date             string  `json:"date" example:"2024-01-16"`
	BaselineHours    float64 `json:"baseline_hours" example:"7.8"`
	DebtAddition     float64 `json:"debt_addition" example:"0.59"`
	StrainAddition   float64 `json:"strain_addition" example:"0"`
	NapSubtraction   float64 `json:"nap_subtraction" example:"0"`
	TotalNeedHours   float64 `json:"total_need_hours" example:"8.39"`
	CurrentDebtHours float64 `json:"current_debt_hours" example:"2.35"`
	CalculatedAt     time.Time `json:"calculated_at"`
}

func (d *DailySleepNeed) ToResponse() DailyNeedResponse {
	return DailyNeedResponse{
		UserID:           d.UserID.String(),
		Date:             d.Date.Format("2006-01-02"),
		BaselineHours:    d.BaselineHours,
		DebtAddition:     d.DebtAddition,
		StrainAddition:   d.StrainAddition,
		NapSubtraction:   d.NapSubtraction,
		TotalNeedHours:   d.TotalNeedHours,
		CurrentDebtHours: d.CurrentDebtHours,
		CalculatedAt:     d.CalculatedAt,
	}
}
