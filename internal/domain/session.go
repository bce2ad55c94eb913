package domain

import (
	"fmt"
	"math"
	"time"
)

// SessionRecord is one focus or break interval inside a FocusSession.
type SessionRecord struct {
	Kind          RecordKind
	DurationValue float64
	OverTimeValue float64
}

// FocusSession is one recorded run of focus and break intervals against a task.
//
// DurationValue is stored as the session source delivers it. Displays treat
// it as seconds; the hourly histogram advances the end time by the same
// number of minutes.
type FocusSession struct {
	ID            string
	StartTime     time.Time
	DurationValue float64
	Records       []SessionRecord
	Task          Task
	CreatedAt     time.Time
}

// BreakCount returns the number of break records in the session.
func (s *FocusSession) BreakCount() int {
	n := 0
	for _, r := range s.Records {
		if r.Kind == RecordBreak {
			n++
		}
	}
	return n
}

// FocusValue sums the duration of focus records.
func (s *FocusSession) FocusValue() float64 {
	var total float64
	for _, r := range s.Records {
		if r.Kind == RecordFocus {
			total += r.DurationValue
		}
	}
	return total
}

// Validate rejects records the store and the remote decoder must not accept.
func (s *FocusSession) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	if s.StartTime.IsZero() {
		return fmt.Errorf("session %s: start time is required", s.ID)
	}
	if !validDuration(s.DurationValue) {
		return fmt.Errorf("session %s: duration %v must be a non-negative number", s.ID, s.DurationValue)
	}
	for i, r := range s.Records {
		if !r.Kind.Valid() {
			return fmt.Errorf("session %s: record %d has unknown kind %q", s.ID, i, r.Kind)
		}
		if !validDuration(r.DurationValue) {
			return fmt.Errorf("session %s: record %d duration %v must be a non-negative number", s.ID, i, r.DurationValue)
		}
	}
	return nil
}

func validDuration(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
