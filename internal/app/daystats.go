package app

import (
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
)

// DayStatsRequest asks for the report of the calendar day containing Day.
type DayStatsRequest struct {
	Day time.Time
	// Location overrides the configured timezone when non-nil.
	Location *time.Location
}

func NewDayStatsRequest(day time.Time) DayStatsRequest {
	return DayStatsRequest{Day: day}
}

type DaySummary struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type SessionRow struct {
	SessionID     string    `json:"id"`
	TaskName      string    `json:"task"`
	DurationValue float64   `json:"duration"`
	BreakCount    int       `json:"breaks"`
	StartTime     time.Time `json:"start"`
}

type DayStatsResponse struct {
	Day         time.Time             `json:"day"`
	Timezone    string                `json:"timezone"`
	WindowStart time.Time             `json:"window_start"`
	WindowEnd   time.Time             `json:"window_end"`
	GeneratedAt time.Time             `json:"generated_at"`
	Summary     DaySummary            `json:"summary"`
	Hourly      []domain.HourlyBucket `json:"hourly"`
	PeakHour    int                   `json:"peak_hour"`
	BreakCount  int                   `json:"break_count"`
	Sessions    []SessionRow          `json:"sessions"`
	Warnings    []string              `json:"warnings,omitempty"`
}

type DayStatsErrorCode string

const (
	DayStatsErrFetchFailed DayStatsErrorCode = "FETCH_FAILED"
	DayStatsErrInvalidDay  DayStatsErrorCode = "INVALID_DAY"
)

type DayStatsError struct {
	Code    DayStatsErrorCode
	Message string
	Err     error
}

func (e *DayStatsError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *DayStatsError) Unwrap() error {
	return e.Err
}
