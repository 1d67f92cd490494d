package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jabrena/polar-metrics/internal/app"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "polar-metrics [flags]",
		Short: "Export the last 30 days of Polar heart-rate data to JSON files.",
		Long: `Polar Metrics is a CLI tool for exporting personal fitness data
from the Polar AccessLink API.

It exchanges an OAuth2 authorization code for an access token, registers
the member if needed, and downloads one continuous heart-rate JSON file
per day for the last 30 days. Days that are already on disk are skipped,
so the tool can run daily and only fetch what is missing.`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
			}

			app.ExecuteExportCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.String(
		"code",
		"",
		"OAuth2 authorization code to exchange (overrides the configured one).")

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save exported files (the path will be created if it doesn't exist).")

	rootCmdFlags.String(
		"pause",
		"",
		fmt.Sprintf("pause between per-day requests, for example: 100ms, 1s (default is '%s').",
			config.DefaultDownloadPause))
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, isLevelCorrect := logger.ParseLogLevel(appConfig.LogLevel); isLevelCorrect {
		logger.SetLevel(level)
	}

	if appConfig.LogFile != "" {
		if err = logger.AddFileSink(appConfig.LogFile); err != nil {
			logger.Fatalf(cmd.Context(), "Failed to open log file: %v", err)
		}
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("code"); flag != nil && flag.Changed {
		cfg.AuthorizationCode, _ = flags.GetString("code")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("pause"); flag != nil && flag.Changed {
		cfg.DownloadPause, _ = flags.GetString("pause")
	}

	return config.ValidateConfig(cfg)
}
