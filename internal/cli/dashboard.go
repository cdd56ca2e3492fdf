package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// Dashboard widget commands: one GET each against the peripheral endpoints,
// decoded and rendered verbatim. The workspace core does not depend on any
// of these.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "regime",
		Short: "Show the current market regime",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, app, func(ctx context.Context) (map[string]interface{}, error) {
				return app.Client.GetRegime(ctx)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "portfolio",
		Short: "Show the paper portfolio summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, app, func(ctx context.Context) (map[string]interface{}, error) {
				return app.Client.GetPortfolio(ctx)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "dividend",
		Short: "Show top dividend opportunities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, app, func(ctx context.Context) (map[string]interface{}, error) {
				return app.Client.GetTopDividends(ctx)
			})
		},
	})

	signalsCmd := &cobra.Command{
		Use:   "signals",
		Short: "Show the Nifty 50 signal board",
	}
	var signalsLimit int
	signalsCmd.Flags().IntVar(&signalsLimit, "limit", 10, "number of signals to fetch")
	signalsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runWidget(cmd, app, func(ctx context.Context) (map[string]interface{}, error) {
			return app.Client.GetNifty50Signals(ctx, signalsLimit)
		})
	}
	rootCmd.AddCommand(signalsCmd)

	backtestCmd := &cobra.Command{
		Use:   "backtest",
		Short: "Show oversold-bounce backtest results",
	}
	var maxStocks, topN int
	backtestCmd.Flags().IntVar(&maxStocks, "max-stocks", 25, "stocks to include in the summary")
	backtestCmd.Flags().IntVar(&topN, "top", 5, "best candidates to fetch")
	backtestCmd.RunE = func(cmd *cobra.Command, args []string) error {
		output := NewOutput(cmd)
		ctx, cancel := widgetContext(cmd, app)
		defer cancel()

		summary, err := app.Client.GetOversoldSummary(ctx, maxStocks)
		if err != nil {
			return err
		}
		best, err := app.Client.GetOversoldBest(ctx, topN)
		if err != nil {
			return err
		}

		if output.IsJSON() {
			return output.JSON(map[string]interface{}{"summary": summary, "best": best})
		}
		output.Info("Summary")
		printDocument(output, summary, "  ")
		output.Info("Best candidates")
		printDocument(output, best, "  ")
		return nil
	}
	rootCmd.AddCommand(backtestCmd)
}

func widgetContext(cmd *cobra.Command, app *App) (context.Context, context.CancelFunc) {
	timeout := app.Config.API.MarketTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

func runWidget(cmd *cobra.Command, app *App, fetch func(context.Context) (map[string]interface{}, error)) error {
	output := NewOutput(cmd)
	ctx, cancel := widgetContext(cmd, app)
	defer cancel()

	doc, err := fetch(ctx)
	if err != nil {
		return err
	}
	if output.IsJSON() {
		return output.JSON(doc)
	}
	printDocument(output, doc, "")
	return nil
}

// printDocument renders a widget document as indented key/value lines with
// stable key ordering.
func printDocument(output *Output, doc map[string]interface{}, indent string) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := doc[k].(type) {
		case map[string]interface{}:
			output.Printf("%s%s:\n", indent, k)
			printDocument(output, v, indent+"  ")
		case []interface{}:
			output.Printf("%s%s:\n", indent, k)
			for _, item := range v {
				if m, ok := item.(map[string]interface{}); ok {
					printDocument(output, m, indent+"  ")
					output.Println()
				} else {
					output.Printf("%s  - %v\n", indent, item)
				}
			}
		case float64:
			output.Printf("%s%s: %s\n", indent, k, formatNumber(v))
		default:
			output.Printf("%s%s: %v\n", indent, k, v)
		}
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
