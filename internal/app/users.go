package app

import (
	"context"
	"errors"
	"strconv"

	polar_client "github.com/jabrena/polar-metrics/internal/client/polar"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
)

// notAvailable is printed for profile fields the API did not return.
const notAvailable = "not available"

// ExecuteRegisterCommand executes the register command.
// It exchanges the authorization code for a token and registers the
// configured member with the API.
func ExecuteRegisterCommand(ctx context.Context, cfg *config.Config) {
	client, token := mustAuthorize(ctx, cfg)

	outcome, err := client.RegisterUser(ctx, token.AccessToken, cfg.MemberID)
	if err != nil {
		logger.Fatalf(ctx, "Registration failed (%s): %v", outcome, err)
		return
	}

	logger.Infof(ctx, "Registration result for member '%s': %s", cfg.MemberID, outcome)
}

// ExecuteUserInfoCommand executes the user-info command.
// It fetches the member's profile and prints every available field;
// fields absent from the payload are reported as not available.
func ExecuteUserInfoCommand(ctx context.Context, cfg *config.Config) {
	client, token := mustAuthorize(ctx, cfg)

	userID := strconv.FormatInt(token.PolarUserID, 10)

	userInfo, err := client.GetUserInfo(ctx, token.AccessToken, userID)
	if err != nil {
		if errors.Is(err, polar_client.ErrNoUserData) {
			logger.Info(ctx, "The API has no data for this user.")
			return
		}

		logger.Fatalf(ctx, "Failed to fetch user info: %v", err)

		return
	}

	logger.Infof(ctx, "Polar User ID: %s", int64OrNA(userInfo.PolarUserID))
	logger.Infof(ctx, "Member ID:     %s", stringOrNA(userInfo.MemberID))
	logger.Infof(ctx, "First Name:    %s", stringOrNA(userInfo.FirstName))
	logger.Infof(ctx, "Last Name:     %s", stringOrNA(userInfo.LastName))
	logger.Infof(ctx, "Birthdate:     %s", stringOrNA(userInfo.Birthdate))
	logger.Infof(ctx, "Gender:        %s", stringOrNA(userInfo.Gender))
	logger.Infof(ctx, "Weight:        %s", floatOrNA(userInfo.Weight, "kg"))
	logger.Infof(ctx, "Height:        %s", floatOrNA(userInfo.Height, "cm"))
}

// mustAuthorize builds the client and performs the token exchange,
// aborting the process on failure.
func mustAuthorize(ctx context.Context, cfg *config.Config) (polar_client.Client, *polar_client.TokenExchange) {
	requireAuthorizationCode(ctx, cfg)

	client, err := polar_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Polar client: %v", err)
	}

	token, err := client.ExchangeAuthorizationCode(ctx, cfg.AuthorizationCode)
	if err != nil {
		logger.Fatalf(ctx, "Failed to obtain access token: %v", err)
	}

	return client, token
}

func stringOrNA(value *string) string {
	if value == nil {
		return notAvailable
	}

	return *value
}

func int64OrNA(value *int64) string {
	if value == nil {
		return notAvailable
	}

	return strconv.FormatInt(*value, 10)
}

func floatOrNA(value *float64, unit string) string {
	if value == nil {
		return notAvailable
	}

	return strconv.FormatFloat(*value, 'f', -1, 64) + " " + unit
}
