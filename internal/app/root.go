package app

import (
	"context"

	polar_client "github.com/jabrena/polar-metrics/internal/client/polar"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
	export_service "github.com/jabrena/polar-metrics/internal/service/export"
)

// ExecuteExportCommand is the entry point for the export flow.
// It initializes the Polar client, sets up the export service, and runs the
// per-day download loop. A run with failed dates ends with a non-zero exit
// status so cron jobs and scripts can tell a clean run from a dirty one.
func ExecuteExportCommand(ctx context.Context, cfg *config.Config) {
	requireAuthorizationCode(ctx, cfg)

	polarClient, err := polar_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Polar client: %v", err)
	}

	s := export_service.NewService(cfg, polarClient)

	var exportErr error

	// Ensure statistics are ALWAYS printed, even on panic,
	// and printed BEFORE the fatal exit since os.Exit skips defers.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintExportSummary(ctx)

		if exportErr != nil {
			logger.Fatalf(ctx, "Export failed: %v", exportErr)
		}
	}()

	exportErr = s.ExportRange(ctx)
}

// requireAuthorizationCode aborts with instructions when no authorization
// code is configured. Checked up front so the user gets a clear message
// instead of a rejected token exchange.
func requireAuthorizationCode(ctx context.Context, cfg *config.Config) {
	if cfg.AuthorizationCode != "" {
		return
	}

	logger.Error(ctx, "No authorization code is configured.")
	logger.Info(ctx, "")
	logger.Info(ctx, "Obtain one with the browser flow:")
	logger.Info(ctx, "  polar-metrics auth login")
	logger.Info(ctx, "")
	logger.Info(ctx, "Or set it directly:")
	logger.Info(ctx, "  POLAR_AUTHORIZATION_CODE environment variable, the --code flag,")
	logger.Info(ctx, "  or the authorization_code key in the config file.")
	logger.Fatalf(ctx, "Cannot continue without an authorization code")
}
