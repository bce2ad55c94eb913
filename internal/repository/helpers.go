package repository

import (
	"time"
)

// utcLayout is fixed-width so stored UTC strings sort chronologically.
const utcLayout = "2006-01-02T15:04:05.000000000Z07:00"

// utcKey formats t as a sortable UTC string used for range predicates.
func utcKey(t time.Time) string {
	return t.UTC().Format(utcLayout)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// formatCreatedAt stores t as RFC3339, defaulting to now for zero values.
func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}
