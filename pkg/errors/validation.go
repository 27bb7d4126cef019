package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from a level file or path string.
//
// Node IDs appear inside connection labels ("a -> b") and comma-separated
// paths, so the characters that delimit those formats are rejected:
//   - No empty IDs
//   - No whitespace or control characters
//   - No commas or "->" sequences
//   - Maximum length of 32 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node ID cannot be empty")
	}

	if len(id) > 32 {
		return New(ErrCodeInvalidNode, "node ID too long (max 32 characters): %q", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidNode, "node ID contains whitespace or control characters: %q", id)
		}
	}

	if strings.Contains(id, ",") || strings.Contains(id, "->") {
		return New(ErrCodeInvalidNode, "node ID cannot contain ',' or '->': %q", id)
	}

	return nil
}

// levelNameRegex matches level names usable as a directory name component.
var levelNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateLevelName validates a level name. Level names are used to derive
// log directory names, so they must be a simple path component.
func ValidateLevelName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLevel, "level name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidLevel, "level name too long (max 64 characters)")
	}

	if strings.Contains(name, "..") || !levelNameRegex.MatchString(name) {
		return New(ErrCodeInvalidLevel, "invalid level name: %q", name)
	}

	return nil
}

// ValidateLogPath validates the path of a solution or trace log file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidateLogPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "log path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "log path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "log path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "log path must name a file: %q", path)
	}

	return nil
}
