package contract

import (
	"time"

	"github.com/alexanderramin/focuslog/internal/app"
)

type DayStatsRequest = app.DayStatsRequest

func NewDayStatsRequest(day time.Time) DayStatsRequest {
	return app.NewDayStatsRequest(day)
}

type DaySummary = app.DaySummary

type SessionRow = app.SessionRow

type DayStatsResponse = app.DayStatsResponse

type DayStatsErrorCode = app.DayStatsErrorCode

const (
	DayStatsErrFetchFailed DayStatsErrorCode = app.DayStatsErrFetchFailed
	DayStatsErrInvalidDay  DayStatsErrorCode = app.DayStatsErrInvalidDay
)

type DayStatsError = app.DayStatsError
