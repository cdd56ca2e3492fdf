package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-copilot/internal/api"
	"trade-copilot/internal/config"
	"trade-copilot/internal/logging"
	"trade-copilot/internal/store"
)

// Version information
const (
	Version   = "0.3.0"
	BuildDate = "2026-08-28"
)

var (
	errStoreUnavailable = errors.New("local store unavailable")
	errBadTheme         = errors.New("theme must be 'dark' or 'light'")
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Client *api.Client
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Client = api.NewClient(api.ClientConfig{
		BaseURL:       cfg.API.BaseURL,
		RetryAttempts: cfg.API.RetryAttempts,
	}, logger)

	dbPath := filepath.Join(config.DefaultConfigDir(), "copilot.db")
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, history will be unavailable")
	} else {
		app.Store = dataStore
		// The stored API base override wins over the config file but not over env.
		if base, err := dataStore.GetPreference(context.Background(), store.PrefAPIBase); err == nil && base != "" &&
			os.Getenv("COPILOT_API_URL") == "" {
			app.Client = api.NewClient(api.ClientConfig{
				BaseURL:       base,
				RetryAttempts: cfg.API.RetryAttempts,
			}, logger)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "trade-copilot",
		Short: "Trade Copilot - AI analysis workspace for NSE equities",
		Long: `Trade Copilot is a paper-trading analysis workspace for the Indian stock market.

It drives a seven-step AI pipeline over the copilot server, renders the trade
decision with its bull/bear debate, and draws OHLCV candlestick charts as SVG.

Use 'trade-copilot help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trade-copilot)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newChartCmd(app))
	rootCmd.AddCommand(newChatCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	addDashboardCommands(rootCmd, app)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
				return
			}
			output.Printf("trade-copilot %s (built %s)\n", Version, BuildDate)
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(app.Config)
				return
			}
			output.Info("API")
			output.Printf("  base_url         %s\n", app.Config.API.BaseURL)
			output.Printf("  analyze_timeout  %s\n", app.Config.API.AnalyzeTimeout)
			output.Info("Risk")
			output.Printf("  min_risk_reward  %.2f\n", app.Config.Risk.MinRiskReward)
			output.Info("Chart")
			output.Printf("  size             %dx%d\n", app.Config.Chart.Width, app.Config.Chart.Height)
			output.Printf("  output_dir       %s\n", app.Config.Chart.OutputDir)
			output.Info("UI")
			output.Printf("  theme            %s\n", app.Config.UI.Theme)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-theme <dark|light>",
		Short: "Persist the theme preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return errStoreUnavailable
			}
			if args[0] != "dark" && args[0] != "light" {
				return errBadTheme
			}
			return app.Store.SetPreference(cmd.Context(), store.PrefTheme, args[0])
		},
	})

	return cmd
}
