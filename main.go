package main

import (
	"fmt"
	"os"
	"strings"

	"trade-copilot/internal/cli"
	"trade-copilot/internal/config"
	apperrors "trade-copilot/internal/errors"
	"trade-copilot/internal/logging"
)

func main() {
	cfg, err := config.Load(configDirArg(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()
	rootCmd := cli.NewRootCmd(cfg, logger)

	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperrors.Surface(err))
		os.Exit(1)
	}
}

// configDirArg pre-scans for --config so the config file is loaded before
// cobra parses flags.
func configDirArg(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
	}
	return ""
}
