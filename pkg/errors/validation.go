package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a project path supplied by a user or API client.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// moduleNameRegex matches dotted Python module paths ("pkg.sub.mod").
var moduleNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateModuleName validates a dotted Python module name.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModule, "module name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidModule, "module name too long (max 256 characters)")
	}

	if !moduleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidModule, "invalid module name: %q", name)
	}

	return nil
}

// hexColorRegex matches #RRGGBB color literals.
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor validates a #RRGGBB color string.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (expected #RRGGBB)", s)
	}

	return nil
}
