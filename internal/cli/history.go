package cli

import (
	"github.com/spf13/cobra"

	"trade-copilot/pkg/utils"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past analyze runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return errStoreUnavailable
			}

			runs, err := app.Store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}
			if len(runs) == 0 {
				output.Dim("No analyze runs recorded yet.")
				return nil
			}

			output.Printf("%-20s %-10s %-6s %-8s %-8s %s\n",
				"WHEN", "TICKER", "ACT", "R:R", "CONV", "STATUS")
			for _, r := range runs {
				status := output.Green("ok")
				if r.Killed {
					status = output.Red("rejected")
				}
				output.Printf("%-20s %-10s %-6s %-8s %-8s %s\n",
					utils.FormatISTDateTime(r.CreatedAt),
					r.Ticker,
					r.Action,
					utils.FormatRiskReward(r.RiskReward),
					utils.FormatConviction(r.Conviction),
					status)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}
