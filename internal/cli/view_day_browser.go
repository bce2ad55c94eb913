package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/focuslog/internal/app"
	"github.com/alexanderramin/focuslog/internal/cli/formatter"
	"github.com/alexanderramin/focuslog/internal/contract"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dayLoadedMsg carries the outcome of one ticketed day load.
type dayLoadedMsg struct {
	ticket app.Ticket
	resp   *contract.DayStatsResponse
	err    error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type dayBrowserKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultDayBrowserKeys() dayBrowserKeyMap {
	return dayBrowserKeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dayBrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Refresh, k.Quit}
}

// ── model ────────────────────────────────────────────────────────────────────

// dayBrowserModel pages through days. Loads run as ticketed commands so a
// slow response for a day the user already left never replaces the report
// of the day on screen.
type dayBrowserModel struct {
	app     *App
	ctx     context.Context
	ctrl    *app.DayController
	keys    dayBrowserKeyMap
	spinner spinner.Model
	width   int
}

func newDayBrowserModel(ctx context.Context, a *App) *dayBrowserModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &dayBrowserModel{
		app:     a,
		ctx:     ctx,
		ctrl:    app.NewDayController(a.now(), a.location()),
		keys:    defaultDayBrowserKeys(),
		spinner: sp,
	}
}

func (m *dayBrowserModel) Init() tea.Cmd {
	return m.load(m.ctrl.Reload(m.ctx))
}

func (m *dayBrowserModel) load(t app.Ticket) tea.Cmd {
	ctrl, uc := m.ctrl, m.app.Stats
	fetch := func() tea.Msg {
		resp, err := ctrl.Load(t, uc)
		return dayLoadedMsg{ticket: t, resp: resp, err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m *dayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dayLoadedMsg:
		m.ctrl.Resolve(msg.ticket, msg.resp, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.View().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			return m, m.load(m.ctrl.Shift(m.ctx, -1))
		case key.Matches(msg, m.keys.Next):
			return m, m.load(m.ctrl.Shift(m.ctx, 1))
		case key.Matches(msg, m.keys.Today):
			return m, m.load(m.ctrl.Select(m.ctx, m.app.now()))
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(m.ctrl.Reload(m.ctx))
		}
	}
	return m, nil
}

func (m *dayBrowserModel) View() string {
	v := m.ctrl.View()
	loc := m.ctrl.Location()

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(formatter.HumanDayFrom(v.Day, m.app.now(), loc)))
	b.WriteString("  " + formatter.SourceBadge(m.app.Source))
	if v.Loading {
		b.WriteString("  " + m.spinner.View() + formatter.Dim(" loading"))
	}
	b.WriteString("\n\n")

	if v.Err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.Err.Error()) + "\n\n")
	}

	switch {
	case v.Report != nil:
		if !domain.SameDay(v.Report.Day, v.Day, loc) {
			b.WriteString("  " + formatter.Dim("Showing "+v.Report.Day.Format("2006-01-02")) + "\n")
		}
		b.WriteString(formatter.FormatDayReport(v.Report, m.app.now()))
		b.WriteString("\n")
	case !v.Loading && v.Err == nil:
		b.WriteString("  " + formatter.Dim("No data.") + "\n")
	}

	hints := make([]string, 0, 5)
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	b.WriteString("\n  " + strings.Join(hints, "  ") + "\n")
	return b.String()
}
