// Package stats turns a day's focus sessions into summary totals and an
// hourly activity histogram. Everything here is pure and synchronous.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
)

// Summary holds the day totals shown on the summary cards.
type Summary struct {
	Total   float64
	Average float64
	Count   int
}

// DayStats bundles everything computed for one reviewed day.
type DayStats struct {
	Summary    Summary
	Hourly     []domain.HourlyBucket
	PeakHour   int // -1 when every bucket is zero
	BreakCount int
}

// Summarize sums DurationValue across sessions. Average is zero for an empty day.
func Summarize(sessions []domain.FocusSession) Summary {
	var total float64
	for _, s := range sessions {
		total += clampDuration(s.DurationValue)
	}
	count := len(sessions)
	var avg float64
	if count > 0 {
		avg = total / float64(count)
	}
	return Summary{Total: total, Average: avg, Count: count}
}

// HourlyDistribution returns exactly 24 buckets, hour ascending.
//
// A session is active in hour h when startHour <= h <= endHour, compared as
// hour-of-day in loc. The end time is start plus DurationValue treated as
// minutes. Sessions starting and ending in the same hour contribute
// DurationValue/60; spanning sessions contribute the minutes they overlap
// with h:00..h+1:00 on the start's calendar day. A session whose end hour
// wraps past midnight below its start hour matches no bucket.
func HourlyDistribution(sessions []domain.FocusSession, loc *time.Location) []domain.HourlyBucket {
	if loc == nil {
		loc = time.Local
	}

	spans := make([]span, 0, len(sessions))
	for _, s := range sessions {
		spans = append(spans, newSpan(s, loc))
	}

	buckets := make([]domain.HourlyBucket, domain.HoursPerDay)
	for h := range domain.HoursPerDay {
		var weight float64
		for _, sp := range spans {
			if sp.startHour <= h && h <= sp.endHour {
				weight += sp.contribution(h, loc)
			}
		}
		buckets[h] = domain.HourlyBucket{Hour: h, Weight: weight}
	}
	return buckets
}

// Compute runs Summarize and HourlyDistribution and derives the peak hour
// and total break count.
func Compute(sessions []domain.FocusSession, loc *time.Location) DayStats {
	hourly := HourlyDistribution(sessions, loc)

	breaks := 0
	for i := range sessions {
		breaks += sessions[i].BreakCount()
	}

	return DayStats{
		Summary:    Summarize(sessions),
		Hourly:     hourly,
		PeakHour:   PeakHour(hourly),
		BreakCount: breaks,
	}
}

// PeakHour returns the earliest hour holding the largest positive weight,
// or -1 when no bucket is positive.
func PeakHour(buckets []domain.HourlyBucket) int {
	peak := -1
	var best float64
	for _, b := range buckets {
		if b.Weight > best {
			best = b.Weight
			peak = b.Hour
		}
	}
	return peak
}

// SortedByStart returns a copy of sessions ordered by start time, ties by ID.
func SortedByStart(sessions []domain.FocusSession) []domain.FocusSession {
	out := make([]domain.FocusSession, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// span is the per-session data the hourly loop needs, computed once.
type span struct {
	start     time.Time
	end       time.Time
	startHour int
	endHour   int
	value     float64
}

func newSpan(s domain.FocusSession, loc *time.Location) span {
	value := clampDuration(s.DurationValue)
	start := s.StartTime.In(loc)
	// Whole minutes only: the value is applied like a wall-clock minute offset.
	end := start.Add(time.Duration(math.Trunc(value)) * time.Minute)
	return span{
		start:     start,
		end:       end,
		startHour: start.Hour(),
		endHour:   end.Hour(),
		value:     value,
	}
}

func (sp span) contribution(hour int, loc *time.Location) float64 {
	if sp.startHour == sp.endHour {
		return sp.value / 60
	}

	y, m, d := sp.start.Date()
	hourStart := time.Date(y, m, d, hour, 0, 0, 0, loc)
	hourEnd := hourStart.Add(time.Hour)

	overlapStart := sp.start
	if hourStart.After(overlapStart) {
		overlapStart = hourStart
	}
	overlapEnd := sp.end
	if hourEnd.Before(overlapEnd) {
		overlapEnd = hourEnd
	}

	return math.Max(0, overlapEnd.Sub(overlapStart).Minutes())
}

// clampDuration maps negative and non-finite values to zero.
func clampDuration(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
