package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/focuslog/internal/app"
	"github.com/alexanderramin/focuslog/internal/contract"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/source"
	"github.com/alexanderramin/focuslog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = time.FixedZone("JST", 9*3600)

type capturingFetcher struct {
	sessions   []domain.FocusSession
	err        error
	start, end time.Time
	calls      int
}

func (f *capturingFetcher) Fetch(_ context.Context, start, end time.Time) ([]domain.FocusSession, error) {
	f.calls++
	f.start, f.end = start, end
	return f.sessions, f.err
}

func session(id, task string, start time.Time, value float64, breaks int) domain.FocusSession {
	s := domain.FocusSession{
		ID:            id,
		StartTime:     start,
		DurationValue: value,
		Task:          domain.Task{ID: "t-" + task, Name: task},
	}
	for range breaks {
		s.Records = append(s.Records,
			domain.SessionRecord{Kind: domain.RecordFocus, DurationValue: 1500},
			domain.SessionRecord{Kind: domain.RecordBreak, DurationValue: 300})
	}
	return s
}

func TestDayReport_RequestsDayWindow(t *testing.T) {
	f := &capturingFetcher{}
	svc := NewStatisticsService(f, tokyo)

	_, err := svc.DayReport(context.Background(), contract.NewDayStatsRequest(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// 20:00 UTC on 1 March is 05:00 on 2 March in Tokyo.
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo), f.start)
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, int(999*time.Millisecond), tokyo), f.end)
}

func TestDayReport_EmptyDay(t *testing.T) {
	svc := NewStatisticsService(&capturingFetcher{sessions: []domain.FocusSession{}}, tokyo)

	resp, err := svc.DayReport(context.Background(), contract.NewDayStatsRequest(time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo)))
	require.NoError(t, err)
	assert.Equal(t, app.DaySummary{}, resp.Summary)
	assert.Len(t, resp.Hourly, domain.HoursPerDay)
	assert.Equal(t, -1, resp.PeakHour)
	assert.Empty(t, resp.Sessions)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, "JST", resp.Timezone)
}

func TestDayReport_ComputesStatsAndRows(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo)
	f := &capturingFetcher{sessions: []domain.FocusSession{
		session("b", "Reading", day.Add(14*time.Hour), 30, 0),
		session("a", "Thesis", day.Add(9*time.Hour+15*time.Minute), 1800, 2),
	}}
	svc := NewStatisticsService(f, tokyo)

	resp, err := svc.DayReport(context.Background(), contract.NewDayStatsRequest(day))
	require.NoError(t, err)

	assert.Equal(t, 1830.0, resp.Summary.Total)
	assert.Equal(t, 915.0, resp.Summary.Average)
	assert.Equal(t, 2, resp.Summary.Count)
	assert.Equal(t, 2, resp.BreakCount)

	assert.InDelta(t, 45.0, resp.Hourly[9].Weight, 1e-9)
	// Hour 14 holds a full hour of the long session plus the short one's 30/60.
	assert.InDelta(t, 60.5, resp.Hourly[14].Weight, 1e-9)
	assert.Equal(t, 14, resp.PeakHour)

	require.Len(t, resp.Sessions, 2)
	assert.Equal(t, "a", resp.Sessions[0].SessionID)
	assert.Equal(t, "Thesis", resp.Sessions[0].TaskName)
	assert.Equal(t, 2, resp.Sessions[0].BreakCount)
	assert.Equal(t, "b", resp.Sessions[1].SessionID)
	assert.Equal(t, tokyo, resp.Sessions[1].StartTime.Location())
}

func TestDayReport_LocationOverride(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)
	f := &capturingFetcher{sessions: []domain.FocusSession{session("a", "T", start, 20, 0)}}
	svc := NewStatisticsService(f, tokyo)

	req := contract.NewDayStatsRequest(start)
	req.Location = time.UTC
	resp, err := svc.DayReport(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "UTC", resp.Timezone)
	assert.InDelta(t, 20.0/60, resp.Hourly[0].Weight, 1e-9)
	assert.Zero(t, resp.Hourly[9].Weight)
}

func TestDayReport_ZeroDayUsesNow(t *testing.T) {
	f := &capturingFetcher{}
	svc := NewStatisticsService(f, tokyo).(*statisticsService)
	svc.now = func() time.Time { return time.Date(2026, 7, 4, 12, 0, 0, 0, tokyo) }

	resp, err := svc.DayReport(context.Background(), app.DayStatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, tokyo), resp.Day)
}

func TestDayReport_FetchErrorIsTyped(t *testing.T) {
	cause := errors.New("connection refused")
	obs := &recordingObserver{}
	svc := NewStatisticsService(&capturingFetcher{err: cause}, tokyo, obs)

	resp, err := svc.DayReport(context.Background(), contract.NewDayStatsRequest(time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo)))
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var dsErr *contract.DayStatsError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, contract.DayStatsErrFetchFailed, dsErr.Code)
	assert.Contains(t, dsErr.Message, "2026-03-02")

	ev := obs.last()
	assert.Equal(t, "day-report", ev.Name)
	assert.False(t, ev.Success)
}

func TestDayReport_WarnsOnInvalidInput(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo)
	f := &capturingFetcher{sessions: []domain.FocusSession{
		session("neg", "T", day.Add(10*time.Hour), -30, 0),
		session("nan", "T", day.Add(11*time.Hour), math.NaN(), 0),
		session("early", "T", day.Add(-2*time.Hour), 10, 0),
	}}
	resp, err := NewStatisticsService(f, tokyo).DayReport(context.Background(), contract.NewDayStatsRequest(day))
	require.NoError(t, err)

	assert.Equal(t, 10.0, resp.Summary.Total)
	require.Len(t, resp.Warnings, 3)
	assert.Contains(t, resp.Warnings[0], "neg")
	assert.Contains(t, resp.Warnings[1], "nan")
	assert.Contains(t, resp.Warnings[2], "outside the selected day")
}

func TestDayReport_ObserverFields(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo)
	obs := &recordingObserver{}
	f := &capturingFetcher{sessions: []domain.FocusSession{session("a", "T", day.Add(8*time.Hour), 25, 0)}}

	_, err := NewStatisticsService(f, tokyo, obs).DayReport(context.Background(), contract.NewDayStatsRequest(day))
	require.NoError(t, err)

	ev := obs.last()
	assert.True(t, ev.Success)
	assert.Equal(t, "2026-03-02", ev.Fields["day"])
	assert.Equal(t, 1, ev.Fields["sessions"])
	assert.Equal(t, 8, ev.Fields["peak_hour"])
}

func TestDayReport_WithLocalStore(t *testing.T) {
	tasks, sessions, _ := setupRepos(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo)

	task := testutil.NewTestTask("Thesis")
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, sessions.Create(ctx, testutil.NewTestSession(task, 90,
		testutil.WithStartTime(day.Add(10*time.Hour+30*time.Minute)),
		testutil.WithPomodoros(1, 1500, 300))))
	require.NoError(t, sessions.Create(ctx, testutil.NewTestSession(task, 40,
		testutil.WithStartTime(day.Add(-time.Hour)))))

	svc := NewStatisticsService(source.NewLocalFetcher(sessions), tokyo)
	resp, err := svc.DayReport(ctx, contract.NewDayStatsRequest(day))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.Count)
	assert.Equal(t, 90.0, resp.Summary.Total)
	assert.InDelta(t, 30.0, resp.Hourly[10].Weight, 1e-9)
	assert.InDelta(t, 60.0, resp.Hourly[11].Weight, 1e-9)
	assert.Equal(t, 1, resp.BreakCount)
}
