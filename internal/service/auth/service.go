package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
)

const (
	// browserSlowMotionDelay is the delay between browser actions for visibility during debugging.
	browserSlowMotionDelay = 200 * time.Millisecond

	// polarDomainSuffix covers every page of the Polar login and consent flow
	// (flow.polar.com, auth.polar.com, account pages).
	polarDomainSuffix = "polar.com"

	// loginPollInterval is the interval for polling the current page URL.
	loginPollInterval = 1 * time.Second

	// maxLoginWaitTime is the maximum time to wait for the user to complete the consent flow.
	maxLoginWaitTime = 10 * time.Minute

	// browserCleanupDelay is the delay to wait for Chrome to release file locks before cleanup.
	browserCleanupDelay = 500 * time.Millisecond
)

var (
	// ErrLoginTimeout is returned when the consent flow takes too long.
	ErrLoginTimeout = errors.New("login timeout exceeded")

	// ErrBrowserClosed is returned when the browser is closed by the user.
	ErrBrowserClosed = errors.New("browser was closed by user")

	// ErrNavigatedAway is returned when the user navigates away from the consent flow.
	ErrNavigatedAway = errors.New("user navigated away from login flow")

	// ErrAccessDenied is returned when the user declines the consent request.
	ErrAccessDenied = errors.New("access denied by user")

	// ErrEmptyRedirectURL is returned when no redirect URL is configured for the browser flow.
	ErrEmptyRedirectURL = errors.New("redirect_url must be set for browser login")
)

// Service provides browser-based authorization-code capture.
type Service interface {
	// LoginAndCaptureCode opens a browser on the consent page, waits for the
	// user to grant access, then extracts the authorization code from the
	// redirect URL.
	LoginAndCaptureCode(ctx context.Context) (string, error)
}

// ServiceImpl provides browser-based authorization for the Polar API.
type ServiceImpl struct {
	cfg     *config.Config
	browser *rod.Browser
	page    *rod.Page
	// tempDir stores the temporary profile directory for cleanup.
	tempDir string
}

// NewService creates a new browser authorization service.
func NewService(cfg *config.Config) (*ServiceImpl, error) {
	if cfg.RedirectURL == "" {
		return nil, ErrEmptyRedirectURL
	}

	return &ServiceImpl{
		cfg: cfg,
	}, nil
}

// LoginAndCaptureCode opens a browser, waits for the user to grant access,
// then extracts the authorization code from the redirect URL.
func (s *ServiceImpl) LoginAndCaptureCode(ctx context.Context) (string, error) {
	logger.Info(ctx, "Starting browser-based authorization")

	// Initialize browser.
	if err := s.initBrowser(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize browser: %w", err)
	}

	defer s.cleanup(ctx)

	// Navigate to the consent page and wait for the redirect with the code.
	code, err := s.waitForAuthorizationCode(ctx)
	if err != nil {
		return "", fmt.Errorf("authorization failed: %w", err)
	}

	logger.Info(ctx, "Authorization code captured successfully")

	return code, nil
}
