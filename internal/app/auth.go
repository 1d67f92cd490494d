package app

import (
	"context"

	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
	"github.com/jabrena/polar-metrics/internal/service/auth"
)

// ExecuteAuthLoginCommand executes the auth login command.
// It opens a browser, waits for the user to grant access, captures the
// authorization code from the redirect, and saves it to the configuration file.
func ExecuteAuthLoginCommand(ctx context.Context, cfg *config.Config) {
	logger.Info(ctx, "Starting authorization process")

	// Create browser authorization service.
	authService, err := auth.NewService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authorization service: %v", err)
		return
	}

	// Perform login and capture the authorization code.
	code, err := authService.LoginAndCaptureCode(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Authorization failed: %v", err)
		return
	}

	// Update configuration with the new code.
	cfg.AuthorizationCode = code

	// Save configuration to file.
	if err = config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	// Print success message.
	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "Authorization complete! You can now export your data.")
	logger.Info(ctx, "")
	logger.Info(ctx, "Export the last 30 days of heart-rate data:")
	logger.Info(ctx, "  polar-metrics")
	logger.Info(ctx, "")
	logger.Info(ctx, "Or check your profile first:")
	logger.Info(ctx, "  polar-metrics user-info")
	logger.Info(ctx, "")
	logger.Info(ctx, "Note: the code is single-use and expires quickly, so run the export soon.")
}
