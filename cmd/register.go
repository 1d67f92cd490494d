package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jabrena/polar-metrics/internal/app"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the configured member with the API",
	Long: `Registers the configured member_id with the Polar AccessLink API.

Registration is idempotent: a member that is already registered is
reported as success. The export command registers automatically, so this
command is mainly useful for verifying credentials.`,
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := config.ValidateConfig(appConfig); err != nil {
			logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
		}

		app.ExecuteRegisterCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(registerCmd)
}
