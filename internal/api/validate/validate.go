package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"
)

// Password length bounds. bcrypt rejects input over MaxPasswordBytes, so the
// upper bound is in bytes.
const (
	MinPasswordLen   = 8
	MaxPasswordBytes = 72
)

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !strfmt.IsEmail(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func Password(v string) error {
	if v == "" {
		return fmt.Errorf("password is required")
	}
	if utf8.RuneCountInString(v) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if len(v) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// MaxLen counts runes, not bytes.
func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if utf8.RuneCountInString(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func OneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", field, strings.Join(allowed, ", "))
}

func IntRange(field string, v, min, max int) error {
	if v < min || v > max {
		return fmt.Errorf("%s must be between %d and %d", field, min, max)
	}
	return nil
}
