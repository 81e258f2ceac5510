package domain

import (
	"time"

	"github.com/google/uuid"
)

// SleepHistoryEntry is one day of raw sleep data for a user, as delivered by
// a wearable integration. One row per (user, date); re-ingesting a date
// overwrites the previous snapshot.
type SleepHistoryEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sleep_history_user_date" json:"user_id"`
	// Calendar day the sleep belongs to (the day the user woke up)
	Date     time.Time  `gorm:"type:date;not null;uniqueIndex:idx_sleep_history_user_date" json:"date"`
	Bedtime  *time.Time `json:"bedtime,omitempty"`
	WakeTime *time.Time `json:"wake_time,omitempty"`
	// Per-stage minutes; zero when the device reports no stage breakdown
	DeepSleepMinutes  int `gorm:"not null;default:0" json:"deep_sleep_minutes"`
	LightSleepMinutes int `gorm:"not null;default:0" json:"light_sleep_minutes"`
	RemSleepMinutes   int `gorm:"not null;default:0" json:"rem_sleep_minutes"`
	AwakeMinutes      int `gorm:"not null;default:0" json:"awake_minutes"`
	// Total time in bed
	DurationInSeconds int       `gorm:"not null;default:0" json:"duration_in_seconds"`
	SleepScore        *int      `json:"sleep_score,omitempty"`
	LocalTimezone     string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"local_timezone"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepHistoryEntry) TableName() string {
	return "sleep_history_entries"
}

func (e *SleepHistoryEntry) location() *time.Location {
	if e.LocalTimezone != "" {
		if l, err := time.LoadLocation(e.LocalTimezone); err == nil {
			return l
		}
	}
	return time.UTC
}

// TotalSleepHours derives total sleep time for the entry. Stage minutes win
// over time in bed (they exclude awake-in-bed time); returns nil when the
// entry carries neither.
func (e *SleepHistoryEntry) TotalSleepHours() *float64 {
	stageMinutes := e.DeepSleepMinutes + e.RemSleepMinutes + e.LightSleepMinutes
	if stageMinutes > 0 {
		tst := float64(stageMinutes) / 60.0
		return &tst
	}
	if e.DurationInSeconds > 0 {
		tst := float64(e.DurationInSeconds) / 3600.0
		return &tst
	}
	return nil
}

// WakeHour is the fractional local hour of day the user woke up, or nil when
// the wake timestamp is missing.
func (e *SleepHistoryEntry) WakeHour() *float64 {
	if e.WakeTime == nil {
		return nil
	}
	local := e.WakeTime.In(e.location())
	h := float64(local.Hour()) + float64(local.Minute())/60.0
	return &h
}

// SleepStartHour is the fractional local hour of day the user fell asleep.
func (e *SleepHistoryEntry) SleepStartHour() *float64 {
	if e.Bedtime == nil {
		return nil
	}
	local := e.Bedtime.In(e.location())
	h := float64(local.Hour()) + float64(local.Minute())/60.0
	return &h
}

// UpsertSleepHistoryRequest is the request body for ingesting a day of sleep data.
// @Description One day of raw sleep data; replaces any existing entry for the same date.
type UpsertSleepHistoryRequest struct {
	// Calendar day the sleep belongs to (YYYY-MM-DD)
	Date string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-01-16"`
	// Sleep onset timestamp in RFC3339 format
	Bedtime *time.Time `json:"bedtime,omitempty" example:"2024-01-15T23:10:00Z"`
	// Wake timestamp in RFC3339 format
	WakeTime *time.Time `json:"wake_time,omitempty" example:"2024-01-16T06:40:00Z"`
	// Minutes of deep sleep
	DeepSleepMinutes int `json:"deep_sleep_minutes" validate:"min=0" example:"85"`
	// Minutes of light sleep
	LightSleepMinutes int `json:"light_sleep_minutes" validate:"min=0" example:"240"`
	// Minutes of REM sleep
	RemSleepMinutes int `json:"rem_sleep_minutes" validate:"min=0" example:"95"`
	// Minutes awake in bed
	AwakeMinutes int `json:"awake_minutes" validate:"min=0" example:"20"`
	// Total time in bed, in seconds
	DurationInSeconds int `json:"duration_in_seconds" validate:"min=0" example:"27000"`
	// Device sleep score (0-100)
	SleepScore *int `json:"sleep_score,omitempty" validate:"omitempty,min=0,max=100" example:"82"`
	// Optional IANA timezone for local-hour derivation (defaults to user's timezone)
	LocalTimezone *string `json:"local_timezone,omitempty" validate:"omitempty,timezone" example:"Europe/Prague"`
}

// SleepHistoryResponse is the response body for sleep history endpoints.
type SleepHistoryResponse struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Date              string     `json:"date" example:"2024-01-16"`
	Bedtime           *time.Time `json:"bedtime,omitempty"`
	WakeTime          *time.Time `json:"wake_time,omitempty"`
	DeepSleepMinutes  int        `json:"deep_sleep_minutes"`
	LightSleepMinutes int        `json:"light_sleep_minutes"`
	RemSleepMinutes   int        `json:"rem_sleep_minutes"`
	AwakeMinutes      int        `json:"awake_minutes"`
	DurationInSeconds int        `json:"duration_in_seconds"`
	SleepScore        *int       `json:"sleep_score,omitempty"`
	LocalTimezone     string     `json:"local_timezone"`
	TotalSleepHours   *float64   `json:"total_sleep_hours,omitempty"`
}

func (e *SleepHistoryEntry) ToResponse() SleepHistoryResponse {
	return SleepHistoryResponse{
		ID:                e.ID,
		UserID:            e.UserID,
		Date:              e.Date.Format("2006-01-02"),
		Bedtime:           e.Bedtime,
		WakeTime:          e.WakeTime,
		DeepSleepMinutes:  e.DeepSleepMinutes,
		LightSleepMinutes: e.LightSleepMinutes,
		RemSleepMinutes:   e.RemSleepMinutes,
		AwakeMinutes:      e.AwakeMinutes,
		DurationInSeconds: e.DurationInSeconds,
		SleepScore:        e.SleepScore,
		LocalTimezone:     e.LocalTimezone,
		TotalSleepHours:   e.TotalSleepHours(),
	}
}

// SleepHistoryListResponse is the response body for listing sleep history.
type SleepHistoryListResponse struct {
	Data       []SleepHistoryResponse `json:"data"`
	Pagination PaginationResponse     `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// SleepHistoryFilter contains filter parameters for listing sleep history
type SleepHistoryFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
