package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuslog/internal/cli/formatter"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/spf13/cobra"
)

const startLayout = "2006-01-02 15:04"

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage focus sessions in the local store",
	}

	cmd.AddCommand(
		newSessionLogCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var taskName, at string
	var duration, focus, rest float64
	var pomodoros int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a focus session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.location()
			start := app.now().In(loc)
			if at != "" {
				parsed, err := time.ParseInLocation(startLayout, at, loc)
				if err != nil {
					return fmt.Errorf("invalid --at %q: expected %q", at, startLayout)
				}
				start = parsed
			}

			s := &domain.FocusSession{
				StartTime: start,
				Task:      domain.Task{Name: taskName},
			}
			for range pomodoros {
				s.Records = append(s.Records,
					domain.SessionRecord{Kind: domain.RecordFocus, DurationValue: focus},
					domain.SessionRecord{Kind: domain.RecordBreak, DurationValue: rest},
				)
			}
			s.DurationValue = duration
			if !cmd.Flags().Changed("duration") {
				s.DurationValue = s.FocusValue()
			}
			if s.DurationValue <= 0 {
				return fmt.Errorf("either --duration or --pomodoros is required")
			}

			if err := app.logSessionUseCase().Log(cmd.Context(), s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session for %s at %s (%s)\n",
				formatter.FormatClock(s.DurationValue), formatter.Bold(s.Task.Name), start.Format("15:04"), s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskName, "task", "", "Task name")
	cmd.Flags().StringVar(&at, "at", "", "Start time as \"YYYY-MM-DD HH:MM\" (default now)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Session duration value in seconds")
	cmd.Flags().IntVar(&pomodoros, "pomodoros", 0, "Number of focus/break cycles to record")
	cmd.Flags().Float64Var(&focus, "focus", 1500, "Focus record length in seconds")
	cmd.Flags().Float64Var(&rest, "break", 300, "Break record length in seconds")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions started on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.location()
			selected, err := day.Resolve(app.now(), loc)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListDay(cmd.Context(), selected, loc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, loc))
			return nil
		},
	}

	cmd.Flags().Var(&day, "date", "Day to list (YYYY-MM-DD, today, yesterday)")
	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a session and its records",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if err := app.Sessions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", id)
			return nil
		},
	}
}
