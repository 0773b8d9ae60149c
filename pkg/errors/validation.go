package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a project-relative path (a basepath or an inventory
// component path) for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths); callers normalize separators first
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// envKeyRegex matches portable environment variable names.
var envKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateEnvKey validates the name of an environment variable forwarded to
// installer processes.
func ValidateEnvKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidConfig, "environment variable name cannot be empty")
	}
	if !envKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidConfig, "invalid environment variable name: %q", key)
	}
	return nil
}

// ValidateEnv validates every key of an environment map.
func ValidateEnv(env map[string]string) error {
	for k := range env {
		if err := ValidateEnvKey(k); err != nil {
			return err
		}
	}
	return nil
}
