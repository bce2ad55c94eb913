package cli

import (
	"time"

	"github.com/alexanderramin/focuslog/internal/app"
	"github.com/alexanderramin/focuslog/internal/auth"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and environment CLI commands run against.
type App struct {
	Stats    service.StatisticsService
	Sessions service.SessionService
	Tasks    service.TaskService
	Auth     *auth.Service

	// LogSession overrides Sessions for the session log command when set.
	LogSession app.LogSessionUseCase

	// Location is the timezone that defines a calendar day.
	Location *time.Location
	// Source names where day reports read sessions from.
	Source domain.SourceMode

	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

// NewRootCmd creates the top-level "focuslog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focuslog",
		Short:         "Focus session tracker and daily statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStatsCmd(app),
		newBrowseCmd(app),
		newSessionCmd(app),
		newTaskCmd(app),
		newAuthCmd(app),
	)

	return root
}
