package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focuslog/internal/cli/formatter"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks that sessions are logged against",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Create a task",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t := &domain.Task{Name: strings.Join(args, " ")}
				if err := app.Tasks.Create(cmd.Context(), t); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", formatter.Bold(t.Name), t.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List tasks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				tasks, err := app.Tasks.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
				return nil
			},
		},
	)

	return cmd
}
