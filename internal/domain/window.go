package domain

import "time"

// DayWindow returns the first and last instant of the calendar day containing
// day, evaluated in loc. The end is inclusive: 23:59:59.999 local time.
func DayWindow(day time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := day.In(loc).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// ParseDay parses a YYYY-MM-DD string as a calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
