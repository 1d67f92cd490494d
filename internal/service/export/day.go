package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jabrena/polar-metrics/internal/constants"
	"github.com/jabrena/polar-metrics/internal/logger"
	"github.com/jabrena/polar-metrics/internal/utils"
)

// Export phases used in recorded errors.
const (
	phaseCheckingArtifact = "checking existing artifact"
	phaseFetchingDay      = "fetching heart-rate data"
	phaseWritingArtifact  = "writing artifact"
)

// File options for overwriting an existing file.
const overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY

// downloadDay exports a single calendar date.
// Existing artifacts are never re-downloaded or overwritten, which makes
// reruns resume instead of repeating work. The artifact is written to a
// temporary .part file first and renamed only on success, so the final
// path never holds partial data.
func (s *ServiceImpl) downloadDay(ctx context.Context, accessToken, date string) DayOutcome {
	finalPath := filepath.Join(s.cfg.OutputPath, date+constants.ExtensionJSON)

	isExist, err := utils.IsFileExist(finalPath)
	if err != nil {
		logger.Errorf(ctx, "Failed to check file '%s': %v", finalPath, err)
		s.recordDayFailure(date, phaseCheckingArtifact, 0, err)

		return DayOutcomeFailed
	}

	if isExist {
		logger.Debugf(ctx, "File '%s' already exists, skipping download", finalPath)
		s.incrementDayAlreadyPresent()

		return DayOutcomeAlreadyPresent
	}

	result, err := s.polarClient.FetchHeartRate(ctx, accessToken, date)
	if err != nil {
		logger.Errorf(ctx, "Failed to fetch heart-rate data for %s: %v", date, err)
		s.recordDayFailure(date, phaseFetchingDay, 0, err)

		return DayOutcomeFailed
	}

	defer result.Body.Close() //nolint:errcheck // Error on close is not critical here.

	switch result.StatusCode {
	case http.StatusOK:
		return s.persistDay(ctx, date, finalPath, result.Body)
	case http.StatusNoContent:
		logger.Debugf(ctx, "No heart-rate data recorded for %s", date)
		s.incrementDayWithoutData()

		return DayOutcomeNoData
	default:
		err = fmt.Errorf("heart-rate endpoint returned HTTP %d", result.StatusCode)
		logger.Errorf(ctx, "Failed to fetch heart-rate data for %s: %v", date, err)
		s.recordDayFailure(date, phaseFetchingDay, result.StatusCode, err)

		return DayOutcomeFailed
	}
}

// persistDay streams the response body into a temporary .part file and
// renames it to the final path on success.
func (s *ServiceImpl) persistDay(ctx context.Context, date, finalPath string, body io.Reader) DayOutcome {
	tempPath := fmt.Sprintf("%s.%s%s", finalPath, uuid.NewString(), constants.ExtensionPart)

	bytesWritten, err := writeTempArtifact(tempPath, body)
	if err != nil {
		logger.Errorf(ctx, "Failed to write artifact for %s: %v", date, err)
		s.recordDayFailure(date, phaseWritingArtifact, 0, err)
		s.cleanupTempArtifact(ctx, tempPath)

		return DayOutcomeFailed
	}

	if err = os.Rename(tempPath, finalPath); err != nil {
		logger.Errorf(ctx, "Failed to finalize artifact for %s: %v", date, err)
		s.recordDayFailure(date, phaseWritingArtifact, 0, err)
		s.cleanupTempArtifact(ctx, tempPath)

		return DayOutcomeFailed
	}

	logger.Debugf(ctx, "Saved '%s' (%d bytes)", finalPath, bytesWritten)
	s.incrementDayDownloaded(bytesWritten)

	return DayOutcomeDownloaded
}

// writeTempArtifact copies the body into the temporary file and reports how
// many bytes landed on disk. The file is closed before the caller renames it.
func writeTempArtifact(tempPath string, body io.Reader) (int64, error) {
	file, err := os.OpenFile(filepath.Clean(tempPath), overwriteFileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	bytesWritten, copyErr := io.Copy(file, body)
	closeErr := file.Close()

	if copyErr != nil {
		return bytesWritten, fmt.Errorf("failed to write file: %w", copyErr)
	}

	if closeErr != nil {
		return bytesWritten, fmt.Errorf("failed to close file: %w", closeErr)
	}

	return bytesWritten, nil
}

// cleanupTempArtifact removes a leftover .part file. Best-effort: a cleanup
// failure is logged, never propagated.
func (s *ServiceImpl) cleanupTempArtifact(ctx context.Context, tempPath string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v", tempPath, err)
	}
}
