package errors

import (
	"strings"
	"unicode"
)

// maxColumnNameLength bounds configured CSV header names.
const maxColumnNameLength = 256

// ValidateColumnName validates a configured CSV column name.
//
// The validation rules are intentionally conservative:
//   - No empty names (after trimming whitespace)
//   - No control characters
//   - Maximum length of 256 characters
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "column name cannot be empty")
	}

	if len(name) > maxColumnNameLength {
		return New(ErrCodeInvalidConfig, "column name too long (max %d characters)", maxColumnNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a path an artifact will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateSource validates a data source location, which is either a local
// file path or an http(s) URL.
func ValidateSource(location string) error {
	if strings.TrimSpace(location) == "" {
		return New(ErrCodeInvalidInput, "source cannot be empty")
	}
	if strings.Contains(location, "://") {
		return ValidateURL(location)
	}
	for _, r := range location {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "source path contains invalid characters")
		}
	}
	return nil
}
