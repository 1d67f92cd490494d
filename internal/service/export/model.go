package export

import (
	"fmt"
	"time"
)

// DayOutcome classifies the result of processing one calendar date.
type DayOutcome uint8

const (
	// DayOutcomeUnknown represents an unclassified result.
	DayOutcomeUnknown DayOutcome = iota
	// DayOutcomeAlreadyPresent - the artifact existed before this run, no request was made.
	DayOutcomeAlreadyPresent
	// DayOutcomeDownloaded - the artifact was downloaded and persisted now.
	DayOutcomeDownloaded
	// DayOutcomeNoData - the API reported no recorded data for the date.
	DayOutcomeNoData
	// DayOutcomeFailed - the date could not be exported.
	DayOutcomeFailed
)

// String returns a human-readable representation of the DayOutcome.
func (o DayOutcome) String() string {
	switch o {
	case DayOutcomeUnknown:
		return "unknown"
	case DayOutcomeAlreadyPresent:
		return "already present"
	case DayOutcomeDownloaded:
		return "downloaded"
	case DayOutcomeNoData:
		return "no data"
	case DayOutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown: %d", o)
	}
}

// ExportError represents a single error that occurred while exporting one date.
type ExportError struct {
	// Date is the calendar date in YYYY-MM-DD form.
	Date string
	// Phase indicates when the error occurred (e.g., "fetching heart-rate data").
	Phase string
	// StatusCode is the HTTP status that caused the failure, 0 when none was received.
	StatusCode int
	// ErrorMessage is the error message.
	ErrorMessage string
}

// ExportStatistics tracks metrics for an export session.
type ExportStatistics struct {
	// StartTime is when the export session began.
	StartTime time.Time
	// EndTime is when the export session completed.
	EndTime time.Time
	// TotalDaysProcessed is the total number of dates attempted.
	TotalDaysProcessed int64
	// DaysDownloaded is the number of artifacts downloaded during this run.
	DaysDownloaded int64
	// DaysAlreadyPresent is the number of dates skipped because the artifact already exists.
	DaysAlreadyPresent int64
	// DaysWithoutData is the number of dates the API reported no data for.
	DaysWithoutData int64
	// DaysFailed is the number of dates that could not be exported.
	DaysFailed int64
	// TotalBytesDownloaded is the total size of persisted artifacts in bytes.
	TotalBytesDownloaded int64
	// Errors is a list of all errors encountered during the export.
	Errors []ExportError
}
