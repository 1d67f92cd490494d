package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jabrena/polar-metrics/internal/logger"
)

// buildAuthorizationURL assembles the consent page URL for this client.
func (s *ServiceImpl) buildAuthorizationURL() string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", s.cfg.ClientID)
	query.Set("redirect_uri", s.cfg.RedirectURL)

	return s.cfg.AuthorizationURL + "?" + query.Encode()
}

// waitForAuthorizationCode navigates to the consent page and waits for the
// redirect that carries the authorization code.
func (s *ServiceImpl) waitForAuthorizationCode(ctx context.Context) (string, error) {
	consentURL := s.buildAuthorizationURL()

	logger.Info(ctx, "Opening the Polar consent page...")
	logger.Debugf(ctx, "Navigating to %s", consentURL)

	s.page.MustNavigate(consentURL)

	logger.Info(ctx, "")
	logger.Info(ctx, "╔══════════════════════════════════════════════════════════════════╗")
	logger.Info(ctx, "║                      LOGIN INSTRUCTIONS                          ║")
	logger.Info(ctx, "╚══════════════════════════════════════════════════════════════════╝")
	logger.Info(ctx, "")
	logger.Info(ctx, "Please complete the authorization in the browser:")
	logger.Info(ctx, "")
	logger.Info(ctx, "1. Sign in with your Polar Flow account")
	logger.Info(ctx, "")
	logger.Info(ctx, "2. Review the requested permissions and click 'Accept'")
	logger.Info(ctx, "")
	logger.Info(ctx, "3. Wait for the redirect - the code is captured automatically")
	logger.Info(ctx, "")
	logger.Info(ctx, "Do NOT close the browser or navigate to other sites.")
	logger.Info(ctx, "")
	logger.Info(ctx, "Waiting for authorization to complete...")
	logger.Info(ctx, "")

	return s.pollForRedirect(ctx)
}

// pollForRedirect watches the page URL until the redirect target delivers
// the authorization code, the user bails out, or the wait times out.
func (s *ServiceImpl) pollForRedirect(ctx context.Context) (string, error) {
	var (
		startTime = time.Now()
		lastURL   string
	)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		// Check timeout.
		if time.Since(startTime) > maxLoginWaitTime {
			return "", fmt.Errorf("%w: waited for %v", ErrLoginTimeout, maxLoginWaitTime)
		}

		// Check if browser was closed.
		if !s.isBrowserAlive(ctx) {
			return "", ErrBrowserClosed
		}

		// Get current URL safely.
		currentURL, err := s.getCurrentURL(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get current URL: %w", err)
		}

		if currentURL != lastURL {
			logger.Debugf(ctx, "URL changed: %s", currentURL)

			lastURL = currentURL
		}

		code, found, err := extractAuthorizationCode(currentURL, s.cfg.RedirectURL)
		if err != nil {
			return "", err
		}

		if found {
			return code, nil
		}

		// Validate the user hasn't navigated away.
		if err = s.validateLoginURL(currentURL); err != nil {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(loginPollInterval):
		}
	}
}

// extractAuthorizationCode reports whether currentURL is the configured
// redirect target and, if so, pulls the code out of its query string.
// A redirect carrying error=access_denied means the user declined consent.
func extractAuthorizationCode(currentURL, redirectURL string) (string, bool, error) {
	current, err := url.Parse(currentURL)
	if err != nil {
		return "", false, nil
	}

	redirect, err := url.Parse(redirectURL)
	if err != nil {
		return "", false, fmt.Errorf("invalid redirect URL: %w", err)
	}

	if current.Host != redirect.Host || current.Path != redirect.Path {
		return "", false, nil
	}

	query := current.Query()

	if errorCode := query.Get("error"); errorCode != "" {
		return "", false, fmt.Errorf("%w: %s", ErrAccessDenied, errorCode)
	}

	code := query.Get("code")
	if code == "" {
		// On the redirect page but the code is not there yet.
		return "", false, nil
	}

	return code, true, nil
}

// validateLoginURL validates that the user hasn't navigated away from the
// Polar domains or the redirect target.
func (s *ServiceImpl) validateLoginURL(currentURL string) error {
	current, err := url.Parse(currentURL)
	if err != nil {
		return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
	}

	// Blank pages show up briefly during navigation.
	if current.Host == "" {
		return nil
	}

	if strings.HasSuffix(current.Host, polarDomainSuffix) {
		return nil
	}

	redirect, err := url.Parse(s.cfg.RedirectURL)
	if err == nil && current.Host == redirect.Host {
		return nil
	}

	return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
}
