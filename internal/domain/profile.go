package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaselineMethod identifies how a baseline sleep need was derived.
type BaselineMethod string

const (
	// MethodMCTQCorrected is the full workday/freeday corrected calculation
	MethodMCTQCorrected BaselineMethod = "mctq_corrected"
	// MethodMedianFallback is the all-entries median used when per-bucket samples are thin
	MethodMedianFallback BaselineMethod = "median_fallback"
	// MethodDefault marks a profile that has never been calculated
	MethodDefault BaselineMethod = "default"
)

// ConfidenceLevel is a tiered reliability rating for a computed value.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// DayType buckets a weekday by schedule regularity.
type DayType string

const (
	DayTypeWorkday DayType = "workday"
	DayTypeFreeday DayType = "freeday"
)

// SleepProfile holds a user's current baseline sleep need. One row per user,
// overwritten on each recalculation; run history lives in SleepNeedCalculation.
type SleepProfile struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	BaselineSleepNeed float64         `gorm:"not null" json:"baseline_sleep_need"`
	Method            BaselineMethod  `gorm:"type:varchar(20);not null" json:"method"`
	Confidence        ConfidenceLevel `gorm:"type:varchar(10);not null" json:"confidence"`
	BasedOnDays       int             `gorm:"not null" json:"based_on_days"`
	LastCalculated    time.Time       `gorm:"not null" json:"last_calculated"`
	SDWorkdayHours    *float64        `json:"sd_workday_hours,omitempty"`
	SDFreedayHours    *float64        `json:"sd_freeday_hours,omitempty"`
	SocialJetlagHours *float64        `json:"social_jetlag_hours,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SleepProfile) TableName() string {
	return "sleep_profiles"
}

// SleepNeedCalculation is an append-only audit row for one baseline run.
type SleepNeedCalculation struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Method            BaselineMethod  `gorm:"type:varchar(20);not null" json:"method"`
	BaselineSleepNeed float64         `gorm:"not null" json:"baseline_sleep_need"`
	SDWorkdayHours    *float64        `json:"sd_workday_hours,omitempty"`
	SDFreedayHours    *float64        `json:"sd_freeday_hours,omitempty"`
	SDWeekHours       *float64        `json:"sd_week_hours,omitempty"`
	SocialJetlagHours *float64        `json:"social_jetlag_hours,omitempty"`
	Confidence        ConfidenceLevel `gorm:"type:varchar(10);not null" json:"confidence"`
	WorkdayCount      int             `gorm:"not null" json:"workday_count"`
	FreedayCount      int             `gorm:"not null" json:"freeday_count"`
	DataStartDate     time.Time       `gorm:"type:date" json:"data_start_date"`
	DataEndDate       time.Time       `gorm:"type:date" json:"data_end_date"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (SleepNeedCalculation) TableName() string {
	return "sleep_need_calculations"
}

// DayClassification is one weekday's workday/freeday bucket for a user.
// Exactly 7 rows per user once a baseline has run; weekday 0 = Sunday.
type DayClassification struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_day_class_user_weekday" json:"user_id"`
	Weekday         int       `gorm:"not null;uniqueIndex:idx_day_class_user_weekday" json:"weekday"`
	ClassifiedAs    DayType   `gorm:"type:varchar(10);not null" json:"classified_as"`
	MeanWakeHour    *float64  `json:"mean_wake_hour,omitempty"`
	VarianceMinutes *float64  `json:"variance_minutes,omitempty"`
	SampleCount     int       `gorm:"not null" json:"sample_count"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DayClassification) TableName() string {
	return "day_classifications"
}

// DailySleepNeed is the composed sleep-need target for one user and date.
// Upserted on (user, date); recomputation overwrites deterministically.
type DailySleepNeed struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_need_user_date" json:"user_id"`
	Date             time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_need_user_date" json:"date"`
	BaselineHours    float64   `gorm:"not null" json:"baseline_hours"`
	DebtAddition     float64   `gorm:"not null" json:"debt_addition"`
	StrainAddition   float64   `gorm:"not null" json:"strain_addition"`
	NapSubtraction   float64   `gorm:"not null" json:"nap_subtraction"`
	TotalNeedHours   float64   `gorm:"not null" json:"total_need_hours"`
	CurrentDebtHours float64   `gorm:"not null" json:"current_debt_hours"`
	CalculatedAt     time.Time `gorm:"not null" json:"calculated_at"`
}

func (DailySleepNeed) TableName() string {
	return "daily_sleep_needs"
}
