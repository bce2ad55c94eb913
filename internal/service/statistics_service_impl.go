package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/focuslog/internal/app"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/source"
	"github.com/alexanderramin/focuslog/internal/stats"
)

type statisticsService struct {
	fetcher  source.Fetcher
	loc      *time.Location
	now      func() time.Time
	observer UseCaseObserver
}

func NewStatisticsService(
	fetcher source.Fetcher,
	loc *time.Location,
	observers ...UseCaseObserver,
) StatisticsService {
	if loc == nil {
		loc = time.Local
	}
	return &statisticsService{
		fetcher:  fetcher,
		loc:      loc,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statisticsService) DayReport(ctx context.Context, req app.DayStatsRequest) (resp *app.DayStatsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "day-report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	loc := s.loc
	if req.Location != nil {
		loc = req.Location
	}
	day := req.Day
	if day.IsZero() {
		day = s.now()
	}

	start, end := domain.DayWindow(day, loc)
	fields["day"] = start.Format("2006-01-02")
	fields["timezone"] = loc.String()

	sessions, err := s.fetcher.Fetch(ctx, start, end)
	if err != nil {
		return nil, &app.DayStatsError{
			Code:    app.DayStatsErrFetchFailed,
			Message: fmt.Sprintf("could not load sessions for %s", start.Format("2006-01-02")),
			Err:     err,
		}
	}

	computed := stats.Compute(sessions, loc)
	fields["sessions"] = computed.Summary.Count
	fields["total"] = computed.Summary.Total
	fields["peak_hour"] = computed.PeakHour

	return &app.DayStatsResponse{
		Day:         start,
		Timezone:    loc.String(),
		WindowStart: start,
		WindowEnd:   end,
		GeneratedAt: s.now().UTC(),
		Summary: app.DaySummary{
			Total:   computed.Summary.Total,
			Average: computed.Summary.Average,
			Count:   computed.Summary.Count,
		},
		Hourly:     computed.Hourly,
		PeakHour:   computed.PeakHour,
		BreakCount: computed.BreakCount,
		Sessions:   buildSessionRows(sessions, loc),
		Warnings:   sessionWarnings(sessions, start, end),
	}, nil
}

// buildSessionRows orders sessions by start for the day table.
func buildSessionRows(sessions []domain.FocusSession, loc *time.Location) []app.SessionRow {
	sorted := stats.SortedByStart(sessions)
	rows := make([]app.SessionRow, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, app.SessionRow{
			SessionID:     s.ID,
			TaskName:      s.Task.Name,
			DurationValue: s.DurationValue,
			BreakCount:    s.BreakCount(),
			StartTime:     s.StartTime.In(loc),
		})
	}
	return rows
}

// sessionWarnings flags inputs the aggregator had to normalize or that the
// source returned outside the requested window.
func sessionWarnings(sessions []domain.FocusSession, start, end time.Time) []string {
	var warnings []string
	for _, s := range sessions {
		v := s.DurationValue
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			warnings = append(warnings, fmt.Sprintf("session %s has invalid duration %v; counted as 0", s.ID, v))
		}
		if s.StartTime.Before(start) || s.StartTime.After(end) {
			warnings = append(warnings, fmt.Sprintf("session %s starts outside the selected day", s.ID))
		}
	}
	return warnings
}
