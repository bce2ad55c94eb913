package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/focuslog/internal/cli/formatter"
	"github.com/alexanderramin/focuslog/internal/contract"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var day dayFlag
	var tz string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, hourly distribution and sessions for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := resolveLocation(tz, app.location())
			if err != nil {
				return invalidDay(err)
			}
			selected, err := day.Resolve(app.now(), loc)
			if err != nil {
				return invalidDay(err)
			}

			req := contract.NewDayStatsRequest(selected)
			req.Location = loc

			var stop func()
			if app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Loading "+selected.Format("2006-01-02")+"...")
			}
			resp, err := app.Stats.DayReport(cmd.Context(), req)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprintln(out, formatter.FormatDayReport(resp, app.now()))
			return nil
		},
	}

	cmd.Flags().Var(&day, "date", "Day to review (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone that defines the calendar day")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func invalidDay(err error) error {
	return &contract.DayStatsError{Code: contract.DayStatsErrInvalidDay, Message: err.Error(), Err: err}
}
