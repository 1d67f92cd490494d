package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTruncate tests the Truncate function.
func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{
			name:      "shorter than limit",
			input:     "abc",
			maxLength: 10,
			expected:  "abc",
		},
		{
			name:      "exactly at limit",
			input:     "0123456789",
			maxLength: 10,
			expected:  "0123456789",
		},
		{
			name:      "longer than limit",
			input:     "secret-access-token-value",
			maxLength: 10,
			expected:  "secret-acc...",
		},
		{
			name:      "empty input",
			input:     "",
			maxLength: 10,
			expected:  "",
		},
		{
			name:      "zero limit",
			input:     "abc",
			maxLength: 0,
			expected:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLength))
		})
	}
}

// TestIsFileExist tests the IsFileExist function.
func TestIsFileExist(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	existingFile := filepath.Join(tempDir, "2024-05-01.json")
	require.NoError(t, os.WriteFile(existingFile, []byte(`{}`), 0o644))

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing file",
			path:     existingFile,
			expected: true,
		},
		{
			name:     "missing file",
			path:     filepath.Join(tempDir, "2024-05-02.json"),
			expected: false,
		},
		{
			name:     "directory is not a file",
			path:     tempDir,
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exists, err := IsFileExist(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

// TestIsTextContentType tests the IsTextContentType function.
func TestIsTextContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{
			name:        "json",
			contentType: "application/json",
			expected:    true,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			expected:    true,
		},
		{
			name:        "plain text",
			contentType: "text/plain",
			expected:    true,
		},
		{
			name:        "binary",
			contentType: "application/octet-stream",
			expected:    false,
		},
		{
			name:        "garbage",
			contentType: ";;;",
			expected:    false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsTextContentType(tt.contentType))
		})
	}
}

// TestSimpleUserAgentProvider tests the static User-Agent provider.
func TestSimpleUserAgentProvider(t *testing.T) {
	t.Parallel()

	provider := NewSimpleUserAgentProvider("polar-metrics/1.0")
	assert.Equal(t, "polar-metrics/1.0", provider.GetUserAgent())
}
