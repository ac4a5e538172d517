package server

import (
	"strings"

	"github.com/spf13/cast"
)

// parseOptionalInt returns nil for blank or non-numeric values so the
// service falls back to its default.
func parseOptionalInt(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := cast.ToIntE(trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}
