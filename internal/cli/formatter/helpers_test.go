package formatter

import (
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "00:00"},
		{"under a minute", 59, "00:00"},
		{"one hour five", 3900, "01:05"},
		{"fractional seconds", 7322.7, "02:02"},
		{"pomodoro", 1500, "00:25"},
		{"negative", -30, "00:00"},
		{"nan", math.NaN(), "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.in))
		})
	}
}

func TestSecondsToMinutes(t *testing.T) {
	assert.Equal(t, 30, SecondsToMinutes(1800))
	assert.Equal(t, 1, SecondsToMinutes(89))
	assert.Equal(t, 2, SecondsToMinutes(90))
	assert.Equal(t, 0, SecondsToMinutes(-60))
	assert.Equal(t, 0, SecondsToMinutes(math.Inf(1)))
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{125, "2h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.min))
	}
}

func TestHumanDayFrom(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)

	assert.Equal(t, "Today · Mon, Mar 2 2026", HumanDayFrom(now, now, loc))
	assert.Equal(t, "Yesterday · Sun, Mar 1 2026", HumanDayFrom(now.AddDate(0, 0, -1), now, loc))
	assert.Equal(t, "Tomorrow · Tue, Mar 3 2026", HumanDayFrom(now.AddDate(0, 0, 1), now, loc))
	assert.Equal(t, "Thu, Feb 26 2026", HumanDayFrom(now.AddDate(0, 0, -4), now, loc))

	// 20:00 UTC on 1 March is already 2 March in Tokyo.
	assert.True(t, strings.HasPrefix(HumanDayFrom(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC), now, loc), "Today"))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdefgh", stripANSI(TruncID("abcdefgh-1234")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderCard(t *testing.T) {
	got := stripANSI(RenderCard("Count", "3"))
	assert.Contains(t, got, "Count")
	assert.Contains(t, got, "3")
	assert.Contains(t, got, "╭")
}
