package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/focuslog/internal/contract"
	"github.com/charmbracelet/lipgloss"
)

const hourlyBarWidth = 30

// FormatDaySummary renders the Total, Average and Count cards side by side.
// Totals arrive as seconds and are shown in whole minutes.
func FormatDaySummary(s contract.DaySummary) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderCard("Total (min)", strconv.Itoa(SecondsToMinutes(s.Total))),
		" ",
		RenderCard("Average (min)", strconv.Itoa(SecondsToMinutes(s.Average))),
		" ",
		RenderCard("Count", strconv.Itoa(s.Count)),
	)
}

// FormatSessionTable renders the Task, Duration, Break count and Time columns.
func FormatSessionTable(rows []contract.SessionRow) string {
	if len(rows) == 0 {
		return Dim("No sessions recorded for this day.") + "\n"
	}
	headers := []string{"TASK", "DURATION", "BREAKS", "TIME"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		task := r.TaskName
		if task == "" {
			task = Dim("(no task)")
		}
		out = append(out, []string{
			task,
			FormatClock(r.DurationValue),
			strconv.Itoa(r.BreakCount),
			r.StartTime.Format("15:04"),
		})
	}
	return RenderAlignedTable(headers, out, []Align{AlignLeft, AlignRight, AlignRight, AlignLeft})
}

// FormatDayReport renders the full statistics screen for one day.
func FormatDayReport(resp *contract.DayStatsResponse, now time.Time) string {
	loc := resp.Day.Location()

	var b strings.Builder
	b.WriteString(Bold(HumanDayFrom(resp.Day, now, loc)))
	b.WriteString(Dim("  " + resp.Timezone))
	b.WriteString("\n\n")

	b.WriteString(FormatDaySummary(resp.Summary))
	b.WriteString("\n\n")

	b.WriteString(Header("Hourly focus"))
	b.WriteString("\n")
	b.WriteString(RenderHourlyChart(resp.Hourly, hourlyBarWidth, resp.PeakHour))
	if resp.PeakHour >= 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Peak hour:"), StyleHeader.Render(fmt.Sprintf("%02d:00", resp.PeakHour)))
	}
	b.WriteString("\n")

	b.WriteString(Header("Sessions"))
	b.WriteString("\n")
	b.WriteString(FormatSessionTable(resp.Sessions))
	if resp.Summary.Count > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Total focus:"), FormatMinutes(SecondsToMinutes(resp.Summary.Total)))
	}
	if resp.BreakCount > 0 {
		fmt.Fprintf(&b, "%s %d\n", Dim("Breaks taken:"), resp.BreakCount)
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: %s", w)) + "\n")
		}
	}

	return RenderBox("Statistics", strings.TrimRight(b.String(), "\n"))
}
