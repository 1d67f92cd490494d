package export

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap/zapcore"

	"github.com/jabrena/polar-metrics/internal/client/polar"
	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/constants"
	"github.com/jabrena/polar-metrics/internal/logger"
)

// Service provides methods for exporting heart-rate data from the Polar API.
type Service interface {
	// ExportRange runs the full export pipeline: token exchange, member
	// registration, and the per-day download loop. It returns a non-nil
	// error if any date failed, so the caller can set the exit status.
	ExportRange(ctx context.Context) error
	// PrintExportSummary prints a formatted summary of export statistics.
	PrintExportSummary(ctx context.Context)
}

// ServiceImpl implements the heart-rate export service.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// polarClient is the client for interacting with the Polar AccessLink API.
	polarClient polar.Client
	// stats tracks export statistics for the current session.
	stats *ExportStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
	// now supplies the current time; swapped out in tests.
	now func() time.Time
}

// ErrExportIncomplete indicates that at least one date failed to export.
var ErrExportIncomplete = errors.New("export finished with failed dates")

// NewService creates an export service instance with dependency-injected components.
func NewService(cfg *config.Config, polarClient polar.Client) Service {
	return &ServiceImpl{
		cfg:         cfg,
		polarClient: polarClient,
		stats:       new(ExportStatistics),
		statsMutex:  new(sync.Mutex),
		now:         time.Now,
	}
}

// ExportRange runs the full export pipeline.
// Dates are processed sequentially, most recent first; a failed date is
// recorded and the loop moves on, so one bad day never abandons the rest.
func (s *ServiceImpl) ExportRange(ctx context.Context) error {
	s.statsMutex.Lock()
	s.stats.StartTime = s.now()
	s.statsMutex.Unlock()

	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = s.now()
		s.statsMutex.Unlock()
	}()

	if err := os.MkdirAll(s.cfg.OutputPath, constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("failed to create output path: %w", err)
	}

	token, err := s.polarClient.ExchangeAuthorizationCode(ctx, s.cfg.AuthorizationCode)
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	if err = s.registerMember(ctx, token.AccessToken); err != nil {
		return err
	}

	s.logUserProfile(ctx, token)

	dates := DateKeys(s.now())

	logger.Infof(ctx, "Exporting heart-rate data for %d days into '%s'", len(dates), s.cfg.OutputPath)

	// The bar and debug-level transport dumps would fight over the terminal,
	// so it only appears at the info level.
	var bar *progressbar.ProgressBar
	if logger.Level() == zapcore.InfoLevel {
		bar = progressbar.Default(int64(len(dates)), "Exporting")
	}

	var failedDays int

	for index, date := range dates {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger.Debugf(ctx, "Processing date %s (%d / %d)", date, index+1, len(dates))

		if outcome := s.downloadDay(ctx, token.AccessToken, date); outcome == DayOutcomeFailed {
			failedDays++
		}

		if bar != nil {
			_ = bar.Add(1)
		}

		// Pause between requests to stay polite with the API.
		if index < len(dates)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.ParsedDownloadPause):
			}
		}
	}

	if failedDays > 0 {
		return fmt.Errorf("%w: %d of %d dates", ErrExportIncomplete, failedDays, len(dates))
	}

	return nil
}

// registerMember registers the member before the download loop starts.
// Registration is best-effort here: the member is normally registered
// already, and a transient registration failure must not abandon an export
// that would otherwise succeed. Declined consents are the exception since
// every subsequent call would be rejected anyway. The register subcommand
// is the strict entry point.
func (s *ServiceImpl) registerMember(ctx context.Context, accessToken string) error {
	_, err := s.polarClient.RegisterUser(ctx, accessToken, s.cfg.MemberID)
	if err == nil {
		return nil
	}

	if errors.Is(err, polar.ErrConsentsNotAccepted) {
		return fmt.Errorf("failed to register member: %w", err)
	}

	logger.Warnf(ctx, "Failed to register member '%s', continuing: %v", s.cfg.MemberID, err)

	return nil
}

// logUserProfile fetches and logs the member's profile.
// Profile retrieval is informational: a failure here is logged and the
// export continues.
func (s *ServiceImpl) logUserProfile(ctx context.Context, token *polar.TokenExchange) {
	userID := strconv.FormatInt(token.PolarUserID, 10)

	userInfo, err := s.polarClient.GetUserInfo(ctx, token.AccessToken, userID)
	if err != nil {
		logger.Warnf(ctx, "Failed to fetch user profile: %v", err)

		return
	}

	name := "unknown"
	if userInfo.FirstName != nil {
		name = *userInfo.FirstName

		if userInfo.LastName != nil {
			name += " " + *userInfo.LastName
		}
	}

	logger.Infof(ctx, "Exporting data of Polar user %s (%s)", userID, name)
}
