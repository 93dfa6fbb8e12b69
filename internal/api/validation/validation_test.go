package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendwave/connect/internal/api/validation"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"admin@excel.ac.ke",
		"secretary@riverside-traders.org",
		"a.b+tag@example.co",
	}
	for _, e := range valid {
		assert.True(t, validation.IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"user@",
		"user @example.com",
	}
	for _, e := range invalid {
		assert.False(t, validation.IsValidEmail(e), e)
	}
}

func TestIsValidRegistrationNumber(t *testing.T) {
	valid := []string{
		"MOE/1/2024",
		"NGO-2024-0042",
		"REG.12345",
	}
	for _, n := range valid {
		assert.True(t, validation.IsValidRegistrationNumber(n), n)
	}

	invalid := []string{
		"",
		"X", // too short
		"/starts/with/slash",
		"has spaces",
		"semi;colon",
	}
	for _, n := range invalid {
		assert.False(t, validation.IsValidRegistrationNumber(n), n)
	}
}

func TestIsValidTenantCode(t *testing.T) {
	valid := []string{"TWC0001", "TWCA1234", "TWCH9999"}
	for _, c := range valid {
		assert.True(t, validation.IsValidTenantCode(c), c)
	}

	invalid := []string{"", "TWC1", "ABC0001", "twc0001", "TWC00001"}
	for _, c := range invalid {
		assert.False(t, validation.IsValidTenantCode(c), c)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, validation.IsValidUUID("b2f1a6e0-9c1d-4a7e-8f3b-2d5c6e7a8b9c"))
	assert.False(t, validation.IsValidUUID("not-a-uuid"))
	assert.False(t, validation.IsValidUUID(""))
}

func TestIsValidPassword(t *testing.T) {
	ok, _ := validation.IsValidPassword("long-enough")
	assert.True(t, ok)

	ok, reason := validation.IsValidPassword("short")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, _ = validation.IsValidPassword(strings.Repeat("x", 200))
	assert.False(t, ok)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", validation.SanitizeString("abc\x00"))
	assert.Equal(t, "line\nbreak", validation.SanitizeString("line\nbreak"))
	assert.Equal(t, "ab", validation.SanitizeString("a\x07b"))
}
