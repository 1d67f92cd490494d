package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jabrena/polar-metrics/internal/app"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authorization management commands",
		Long: `Manage authorization for the Polar AccessLink API.

Use 'auth login' to grant access via browser and automatically capture the
OAuth2 authorization code.`,
	}

	authLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Grant access in a browser and capture the authorization code",
		Long: `Opens a browser window on the Polar consent page.

The authorization process:
1. Browser opens at the Polar Flow consent page
2. Sign in with your Polar account
3. Review the requested permissions and click "Accept"
4. Wait for the redirect - the code is captured automatically

After successful authorization, the code is saved to the configuration
file. The code is single-use and short-lived, so run the export right
after:

polar-metrics`,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := config.ValidateConfig(appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
			}

			app.ExecuteAuthLoginCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add login subcommand to auth command.
	authCmd.AddCommand(authLoginCmd)

	// Add auth command to root command.
	rootCmd.AddCommand(authCmd)
}
