package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jabrena/polar-metrics/internal/logger"
)

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// incrementDayDownloaded atomically increments the downloaded counter and adds bytes.
func (s *ServiceImpl) incrementDayDownloaded(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.DaysDownloaded++
	s.stats.TotalDaysProcessed++
	s.stats.TotalBytesDownloaded += bytes
}

// incrementDayAlreadyPresent atomically increments the already-present counter.
func (s *ServiceImpl) incrementDayAlreadyPresent() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.DaysAlreadyPresent++
	s.stats.TotalDaysProcessed++
}

// incrementDayWithoutData atomically increments the no-data counter.
func (s *ServiceImpl) incrementDayWithoutData() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.DaysWithoutData++
	s.stats.TotalDaysProcessed++
}

// recordDayFailure atomically increments the failed counter and records the error.
func (s *ServiceImpl) recordDayFailure(date, phase string, statusCode int, err error) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.DaysFailed++
	s.stats.TotalDaysProcessed++
	s.stats.Errors = append(s.stats.Errors, ExportError{
		Date:         date,
		Phase:        phase,
		StatusCode:   statusCode,
		ErrorMessage: err.Error(),
	})
}

// Statistics returns a snapshot of the current export statistics.
func (s *ServiceImpl) Statistics() ExportStatistics {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	snapshot := *s.stats
	snapshot.Errors = append([]ExportError(nil), s.stats.Errors...)

	return snapshot
}

// PrintExportSummary prints a formatted summary of export statistics.
func (s *ServiceImpl) PrintExportSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing was processed, don't print summary.
	if stats.TotalDaysProcessed == 0 {
		return
	}

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted)
	s.printDayStatistics(ctx, stats)
	s.printDataTransferStatistics(ctx, stats)
	s.printSummaryFooter(ctx)
	s.printErrorDetails(ctx, stats)
	s.printFinalMessage(ctx, wasInterrupted, stats)
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if wasInterrupted {
		logger.Info(ctx, "            EXPORT SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                     EXPORT SUMMARY")
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
}

// printDayStatistics prints per-day export statistics.
func (s *ServiceImpl) printDayStatistics(ctx context.Context, stats *ExportStatistics) {
	logger.Infof(ctx, "Days:             %d total processed", stats.TotalDaysProcessed)

	if stats.DaysDownloaded > 0 {
		logger.Infof(ctx, "  Downloaded:     %d", stats.DaysDownloaded)
	}

	if stats.DaysAlreadyPresent > 0 {
		logger.Infof(ctx, "  Already Have:   %d", stats.DaysAlreadyPresent)
	}

	if stats.DaysWithoutData > 0 {
		logger.Infof(ctx, "  No Data:        %d", stats.DaysWithoutData)
	}

	if stats.DaysFailed > 0 {
		logger.Infof(ctx, "  Failed:         %d", stats.DaysFailed)
	}

	// Success rate.
	if stats.TotalDaysProcessed > 0 {
		successCount := stats.TotalDaysProcessed - stats.DaysFailed
		successRate := float64(successCount) / float64(stats.TotalDaysProcessed) * 100
		logger.Infof(ctx, "  Success Rate:   %.1f%%", successRate)
	}
}

// printDataTransferStatistics prints data transfer statistics.
func (s *ServiceImpl) printDataTransferStatistics(ctx context.Context, stats *ExportStatistics) {
	if stats.TotalBytesDownloaded > 0 {
		logger.Info(ctx, "")
		//nolint:gosec // TotalBytesDownloaded is always positive, no overflow risk.
		logger.Infof(ctx, "Data Downloaded:  %s", humanize.Bytes(uint64(stats.TotalBytesDownloaded)))
	}

	// Print duration if we have both start and end times.
	if !stats.StartTime.IsZero() && !stats.EndTime.IsZero() {
		duration := stats.EndTime.Sub(stats.StartTime)

		// Only show if duration is meaningful (> 100ms).
		if duration > 100*time.Millisecond {
			logger.Infof(ctx, "Duration:         %s", formatDuration(duration))
		}
	}
}

// printSummaryFooter prints the summary footer separator.
func (s *ServiceImpl) printSummaryFooter(ctx context.Context) {
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
}

// printErrorDetails prints detailed error information if any errors occurred.
func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *ExportStatistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(stats.Errors))

	for i := range stats.Errors {
		logger.Info(ctx, "")
		logger.Errorf(ctx, "  [%d] %s", i+1, stats.Errors[i].Date)
		logger.Errorf(ctx, "      Phase: %s", stats.Errors[i].Phase)

		if stats.Errors[i].StatusCode != 0 {
			logger.Errorf(ctx, "      HTTP Status: %d", stats.Errors[i].StatusCode)
		}

		logger.Errorf(ctx, "      Error: %s", stats.Errors[i].ErrorMessage)
	}

	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")
}

// printFinalMessage prints a helpful message based on export results.
func (s *ServiceImpl) printFinalMessage(ctx context.Context, wasInterrupted bool, stats *ExportStatistics) {
	switch {
	case wasInterrupted:
		logger.Info(ctx, "")
		logger.Warn(ctx, "Export interrupted by user (CTRL+C).")

		if stats.DaysDownloaded > 0 {
			logger.Infof(ctx, "Successfully downloaded %d day(s) before interruption.", stats.DaysDownloaded)
		}
	case len(stats.Errors) > 0:
		logger.Info(ctx, "")
		logger.Warnf(ctx, "%d error(s) occurred during export. See detailed error log above.", len(stats.Errors))
		logger.Info(ctx, "Failed dates will be retried on the next run.")
	case stats.DaysDownloaded > 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "Export completed successfully!")
	case stats.DaysAlreadyPresent > 0 && stats.DaysDownloaded == 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All days already exist in the output directory.")
	}
}
