package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("ada@example.com"))
	assert.EqualError(t, Email(""), "email is required")
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email(strings.Repeat("a", 320)+"@example.com"))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("12345678"))
	assert.Error(t, Password("1234567"))
	assert.EqualError(t, Password(""), "password is required")
	// eight runes, more than eight bytes
	assert.NoError(t, Password("àèìòùàèì"))

	assert.NoError(t, Password(strings.Repeat("a", MaxPasswordBytes)))
	assert.EqualError(t, Password(strings.Repeat("a", 80)), "password must be at most 72 bytes")
	// 40 runes but 80 bytes
	assert.Error(t, Password(strings.Repeat("à", 40)))
}

func TestMaxLen(t *testing.T) {
	s := strings.Repeat("é", 1000)
	assert.NoError(t, MaxLen("message", &s, 1000))
	s += "x"
	assert.EqualError(t, MaxLen("message", &s, 1000), "message exceeds 1000 characters")
	assert.NoError(t, MaxLen("message", nil, 1))
}

func TestOneOfAndRange(t *testing.T) {
	assert.NoError(t, OneOf("format", "zip", "json", "zip"))
	assert.EqualError(t, OneOf("format", "csv", "json", "zip"), "format must be one of json, zip")
	assert.NoError(t, IntRange("audioRetentionDays", 365, 1, 365))
	assert.Error(t, IntRange("audioRetentionDays", 0, 1, 365))
	assert.Error(t, NonEmpty("text", "   "))
}
