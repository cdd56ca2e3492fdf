package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"trade-copilot/internal/chart"
	"trade-copilot/internal/models"
	"trade-copilot/pkg/utils"
)

func newChartCmd(app *App) *cobra.Command {
	var (
		periodLabel string
		viewName    string
		hoverIndex  int
	)

	cmd := &cobra.Command{
		Use:   "chart <ticker>",
		Short: "Fetch candles and write an SVG chart",
		Long: `Fetches OHLCV candles for the ticker and writes a candlestick or line
chart with the volume sub-panel and any server-computed SMA overlays.
Passing --hover N draws the crosshair and tooltip for bar N.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ticker := utils.NormalizeTicker(args[0])

			idx := models.PeriodIndexByLabel(strings.ToUpper(periodLabel))
			if idx < 0 {
				idx = models.DefaultPeriodIndex
			}
			period := models.PeriodByIndex(idx)

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.API.MarketTimeout)
			defer cancel()

			candles, err := app.Client.GetMarket(ctx, ticker, period)
			if err != nil {
				return err
			}

			view := models.ViewCandlestick
			if viewName == "line" {
				view = models.ViewLine
			}

			path, err := writeChartFile(app, ticker, candles, view, hoverIndex)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"ticker":  ticker,
					"period":  period.Label,
					"candles": len(candles),
					"path":    path,
				})
			}
			output.Success("Wrote %s (%d candles, %s)", path, len(candles), period.Label)
			return nil
		},
	}

	cmd.Flags().StringVarP(&periodLabel, "period", "p", "1M", "chart period (1D, 1W, 1M, 3M, 1Y)")
	cmd.Flags().StringVar(&viewName, "view", "candlestick", "chart view (candlestick, line)")
	cmd.Flags().IntVar(&hoverIndex, "hover", chart.NoHover, "draw crosshair and tooltip at bar N")
	return cmd
}
