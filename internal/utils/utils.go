package utils

import (
	"mime"
	"os"
	"strings"
)

// Truncate returns at most maxLength characters of s.
// It is used to log previews of secrets (authorization codes, access tokens)
// without ever writing the full value.
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	return string(runes[:maxLength]) + "..."
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// IsTextContentType checks if the given content type represents a text-based format,
// such as "text/*" or "application/json". Used to decide whether HTTP response
// bodies are safe to include in debug dumps.
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	if !strings.HasPrefix(parsedType, "text/") && parsedType != "application/json" {
		return false
	}

	charset := strings.ToLower(params["charset"])

	return charset == "" || charset == "utf-8" || charset == "us-ascii"
}
