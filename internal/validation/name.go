package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateDisplayName validates a user's display name
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)

	if utf8.RuneCountInString(trimmed) < 2 {
		return errors.New("display name must be at least 2 characters")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return errors.New("display name is too long (max 100 characters)")
	}

	return nil
}
