package app

import (
	"context"
	"sync"
	"time"
)

// Ticket identifies one day-report request. Only the most recently issued
// ticket may change the controller's report.
type Ticket struct {
	ID  uint64
	Day time.Time
	Ctx context.Context
}

// DayView is a consistent snapshot of the controller state.
type DayView struct {
	Day     time.Time
	Report  *DayStatsResponse
	Err     error
	Loading bool
}

// DayController owns the day under review and the report currently shown
// for it. Selecting a new day cancels the request in flight and results
// that arrive for superseded tickets are discarded.
type DayController struct {
	mu     sync.Mutex
	loc    *time.Location
	day    time.Time
	seq    uint64
	cancel context.CancelFunc

	report  *DayStatsResponse
	err     error
	loading bool
}

func NewDayController(day time.Time, loc *time.Location) *DayController {
	if loc == nil {
		loc = time.Local
	}
	return &DayController{loc: loc, day: startOfDay(day, loc)}
}

// Select makes day current and issues a ticket for loading it.
func (c *DayController) Select(parent context.Context, day time.Time) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(parent, day)
}

// Shift selects the day n calendar days away from the current one.
func (c *DayController) Shift(parent context.Context, n int) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(parent, c.day.AddDate(0, 0, n))
}

// Reload issues a fresh ticket for the current day.
func (c *DayController) Reload(parent context.Context) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(parent, c.day)
}

// selectLocked requires c.mu.
func (c *DayController) selectLocked(parent context.Context, day time.Time) Ticket {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.seq++
	c.day = startOfDay(day, c.loc)
	c.loading = true
	return Ticket{ID: c.seq, Day: c.day, Ctx: ctx}
}

// Resolve applies the outcome of t. It reports false when t has been
// superseded. A failed load keeps the previous report and records err.
func (c *DayController) Resolve(t Ticket, report *DayStatsResponse, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.ID != c.seq {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return true
	}
	c.report = report
	c.err = nil
	return true
}

// Load runs uc for t. The caller passes the result to Resolve.
func (c *DayController) Load(t Ticket, uc DayReportUseCase) (*DayStatsResponse, error) {
	req := NewDayStatsRequest(t.Day)
	req.Location = c.loc
	return uc.DayReport(t.Ctx, req)
}

func (c *DayController) View() DayView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DayView{Day: c.day, Report: c.report, Err: c.err, Loading: c.loading}
}

func (c *DayController) Location() *time.Location {
	return c.loc
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
