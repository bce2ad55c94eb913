package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RenderCard renders a small labelled metric box.
func RenderCard(label, value string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2).
		Render(Dim(label) + "\n" + Bold(value))
}

// HumanDayFrom labels day relative to now, both compared in loc.
func HumanDayFrom(day, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	d := day.In(loc)
	y1, m1, d1 := now.In(loc).Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, loc)
	y2, m2, d2 := d.Date()
	diff := int(math.Round(time.Date(y2, m2, d2, 0, 0, 0, 0, loc).Sub(today).Hours() / 24))

	label := d.Format("Mon, Jan 2 2006")
	switch diff {
	case 0:
		return "Today · " + label
	case -1:
		return "Yesterday · " + label
	case 1:
		return "Tomorrow · " + label
	}
	return label
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// SecondsToMinutes rounds a duration value in seconds to whole minutes.
func SecondsToMinutes(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return int(math.Round(v / 60))
}

// FormatClock renders a duration value in seconds as HH:MM.
func FormatClock(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		v = 0
	}
	total := int(v) / 60
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
