package export

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jabrena/polar-metrics/internal/client/polar"
	mock_polar "github.com/jabrena/polar-metrics/internal/client/polar/mocks"
	"github.com/jabrena/polar-metrics/internal/config"
)

var errBrokenStream = errors.New("stream broke mid-transfer")

// brokenReader fails after yielding a few bytes, simulating a connection
// that dies in the middle of a response body.
type brokenReader struct {
	remaining int
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, errBrokenStream
	}

	n := min(len(p), r.remaining)
	for i := 0; i < n; i++ {
		p[i] = 'x'
	}

	r.remaining -= n

	return n, nil
}

func (r *brokenReader) Close() error { return nil }

func TestDownloadDay_BrokenBodyLeavesNoArtifact(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockClient := mock_polar.NewMockClient(ctrl)

	outputPath := t.TempDir()

	service := &ServiceImpl{
		cfg:         &config.Config{OutputPath: outputPath},
		polarClient: mockClient,
		stats:       new(ExportStatistics),
		statsMutex:  new(sync.Mutex),
		now:         time.Now,
	}

	const date = "2026-08-23"

	mockClient.EXPECT().
		FetchHeartRate(gomock.Any(), testAccessToken, date).
		Return(&polar.HeartRateResult{
			StatusCode:    http.StatusOK,
			ContentLength: -1,
			Body:          &brokenReader{remaining: 16},
		}, nil)

	outcome := service.downloadDay(context.Background(), testAccessToken, date)

	assert.Equal(t, DayOutcomeFailed, outcome)
	assert.NoFileExists(t, filepath.Join(outputPath, date+".json"))

	// The partially written temporary file must be gone as well.
	leftovers, err := filepath.Glob(filepath.Join(outputPath, "*.part"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	stats := service.Statistics()
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, phaseWritingArtifact, stats.Errors[0].Phase)
}

func TestDownloadDay_TransportFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockClient := mock_polar.NewMockClient(ctrl)

	service := &ServiceImpl{
		cfg:         &config.Config{OutputPath: t.TempDir()},
		polarClient: mockClient,
		stats:       new(ExportStatistics),
		statsMutex:  new(sync.Mutex),
		now:         time.Now,
	}

	const date = "2026-08-23"

	mockClient.EXPECT().
		FetchHeartRate(gomock.Any(), testAccessToken, date).
		Return(nil, polar.ErrTransport)

	outcome := service.downloadDay(context.Background(), testAccessToken, date)

	assert.Equal(t, DayOutcomeFailed, outcome)

	stats := service.Statistics()
	assert.Equal(t, int64(1), stats.DaysFailed)
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, 0, stats.Errors[0].StatusCode)
}

var _ io.ReadCloser = (*brokenReader)(nil)
