package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/focuslog/internal/auth"
	"github.com/alexanderramin/focuslog/internal/domain"
)

// FormatSessionList renders stored sessions with their IDs for removal.
func FormatSessionList(sessions []*domain.FocusSession, loc *time.Location) string {
	if len(sessions) == 0 {
		return Dim("No sessions found.") + "\n"
	}
	if loc == nil {
		loc = time.Local
	}
	headers := []string{"ID", "TIME", "TASK", "DURATION", "RECORDS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.StartTime.In(loc).Format("15:04"),
			s.Task.Name,
			FormatClock(s.DurationValue),
			strconv.Itoa(len(s.Records)),
		})
	}
	return RenderAlignedTable(headers, rows, []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight})
}

// FormatTaskList renders the task catalogue.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet. Create one with 'focuslog task add <name>'.") + "\n"
	}
	headers := []string{"ID", "NAME", "CREATED"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{TruncID(t.ID), Bold(t.Name), Dim(t.CreatedAt.Format("2006-01-02"))})
	}
	return RenderTable(headers, rows)
}

// FormatAuthStatus describes the stored credentials.
func FormatAuthStatus(c *auth.Credentials) string {
	if c == nil {
		return Dim("Not logged in. Run 'focuslog auth login' or 'focuslog auth debug'.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Dim("Source:   ") + SourceBadge(c.Mode) + "\n")
	if c.Username != "" {
		b.WriteString(Dim("User:     ") + Bold(c.Username) + "\n")
	}
	if c.APIURL != "" {
		b.WriteString(Dim("API URL:  ") + c.APIURL + "\n")
	}
	if !c.IssuedAt.IsZero() {
		b.WriteString(Dim("Since:    ") + c.IssuedAt.Local().Format("2006-01-02 15:04") + "\n")
	}
	return b.String()
}
