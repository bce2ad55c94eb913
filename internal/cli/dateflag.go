package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/spf13/pflag"
)

// dayFlag is a --date value: YYYY-MM-DD, "today" or "yesterday".
type dayFlag struct {
	raw string
}

var _ pflag.Value = (*dayFlag)(nil)

func (f *dayFlag) String() string {
	return f.raw
}

// Set only records the value; Resolve reports malformed days so callers can
// classify the failure.
func (f *dayFlag) Set(s string) error {
	f.raw = strings.ToLower(strings.TrimSpace(s))
	return nil
}

func (f *dayFlag) Type() string {
	return "date"
}

// Resolve returns the selected day in loc. An unset flag means today.
func (f *dayFlag) Resolve(now time.Time, loc *time.Location) (time.Time, error) {
	switch f.raw {
	case "", "today":
		return now.In(loc), nil
	case "yesterday":
		return now.In(loc).AddDate(0, 0, -1), nil
	}
	day, err := domain.ParseDay(f.raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD, today or yesterday", f.raw)
	}
	return day, nil
}

// resolveLocation applies a --tz override on top of the configured zone.
func resolveLocation(tz string, fallback *time.Location) (*time.Location, error) {
	if tz == "" {
		return fallback, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", tz)
	}
	return loc, nil
}
