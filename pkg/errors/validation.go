package errors

import (
	"strings"
	"unicode"
)

// ValidateLookupName validates a user-supplied lookup name (style, preset,
// color set, or theme) before it is matched against the known tables.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//
// The kind parameter names the table being queried and is used in messages.
func ValidateLookupName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "%s name cannot be empty", kind)
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidConfig, "%s name too long (max 128 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s name contains invalid control characters", kind)
		}
	}

	return nil
}

// ValidateOutputPath validates a file path an artifact will be written to.
// It rejects paths that cannot be valid on any supported platform.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormatName validates an output format token before it is matched
// against the supported format set. Leading dots are tolerated ("png" and
// ".png" are the same format) but the remainder must be a short alphanumeric
// word.
func ValidateFormatName(format string) error {
	trimmed := strings.TrimPrefix(format, ".")
	if trimmed == "" {
		return New(ErrCodeUnknownFormat, "format cannot be empty")
	}

	if len(trimmed) > 8 {
		return New(ErrCodeUnknownFormat, "format too long: %q", format)
	}

	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeUnknownFormat, "format contains invalid characters: %q", format)
		}
	}

	return nil
}
