package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trade-copilot/internal/chart"
	"trade-copilot/internal/models"
	"trade-copilot/internal/store"
	"trade-copilot/internal/views"
	"trade-copilot/internal/workspace"
	"trade-copilot/pkg/utils"
)

const panelWidth = 100

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		periodLabel string
		stepIndex   int
		noChart     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <ticker>",
		Short: "Run the full AI pipeline for a ticker",
		Long: `Runs the seven-step analysis pipeline and the chart fetch concurrently,
then renders the trade decision, pipeline progress, and bull/bear debate.
The candlestick chart is written next to the report as an SVG file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ticker := utils.NormalizeTicker(args[0])

			ctrl := workspace.NewController(app.Client, workspace.Config{
				AnalyzeTimeout: app.Config.API.AnalyzeTimeout,
			}, app.Logger)
			defer ctrl.Close()

			ctrl.SetTicker(ticker)
			if idx := models.PeriodIndexByLabel(strings.ToUpper(periodLabel)); idx >= 0 {
				ctrl.SetPeriodIndex(idx)
			}

			output.Info("Analyzing %s", ticker)
			if err := ctrl.RunAnalysis(); err != nil {
				return err
			}
			if banner := views.RenderRunning(ctrl.Snapshot().Analysis); banner != "" {
				output.Println(banner)
			}
			ctrl.WaitIdle()

			if stepIndex >= 0 {
				ctrl.SelectStep(stepIndex)
			}
			st := ctrl.Snapshot()

			if st.Analysis.Error != "" {
				output.Error("%s", st.Analysis.Error)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"ticker": ticker,
					"trade":  st.Analysis.Trade,
					"steps":  st.Analysis.Steps,
					"debate": st.Analysis.Debate,
				})
			}

			output.Println(views.RenderTrade(st.Analysis.Trade, panelWidth))
			output.Println(views.RenderPipeline(st.Analysis.Steps, st.SelectedStepIndex, panelWidth))
			output.Println(views.RenderDebate(st.Analysis.Debate, st.SelectedStepIndex, panelWidth))

			if st.Chart.Error != "" {
				output.Warning("chart: %s", st.Chart.Error)
			} else if !noChart {
				path, err := writeChartFile(app, ticker, st.Chart.Candles, st.ChartView, chart.NoHover)
				if err != nil {
					output.Warning("chart: %v", err)
				} else {
					output.Dim("Chart written to %s", path)
				}
			}

			journalRun(app, ticker, st)
			return nil
		},
	}

	cmd.Flags().StringVarP(&periodLabel, "period", "p", "1M", "chart period (1D, 1W, 1M, 3M, 1Y)")
	cmd.Flags().IntVar(&stepIndex, "step", -1, "expand the output of step N (0-6)")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "skip writing the SVG chart")
	return cmd
}

func writeChartFile(app *App, ticker string, candles []models.Candle, view models.ChartView, hover int) (string, error) {
	scene := chart.BuildScene(candles, chart.Options{
		Width:      float64(app.Config.Chart.Width),
		Height:     float64(app.Config.Chart.Height),
		View:       view,
		HoverIndex: hover,
	})

	dir := app.Config.Chart.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.svg",
		strings.ToLower(ticker), time.Now().Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	chart.WriteSVG(f, scene)
	return path, nil
}

func journalRun(app *App, ticker string, st workspace.State) {
	if app.Store == nil || st.Analysis.Trade == nil {
		return
	}
	trade := st.Analysis.Trade

	rec := store.RunRecord{
		Ticker:     ticker,
		Action:     string(trade.Action),
		Killed:     trade.Killed,
		KillReason: trade.KillReason,
		RiskReward: trade.RiskReward,
	}
	if trade.Conviction != nil {
		rec.Conviction = *trade.Conviction
	}

	if _, err := app.Store.SaveRun(context.Background(), rec); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to journal analyze run")
	}
}
