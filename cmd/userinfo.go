package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jabrena/polar-metrics/internal/app"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
)

var userInfoCmd = &cobra.Command{
	Use:   "user-info",
	Short: "Show the registered member's profile",
	Long: `Fetches and prints the profile of the registered member: Polar user
ID, name, birthdate, gender, weight, and height.

Fields the API does not return are reported as not available.`,
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := config.ValidateConfig(appConfig); err != nil {
			logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
		}

		app.ExecuteUserInfoCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(userInfoCmd)
}
