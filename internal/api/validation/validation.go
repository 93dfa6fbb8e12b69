package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// emailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// regNumberRegex validates external legal registration numbers like
	// "MOE/1/2024" or "BRS-2023-0042"
	regNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/\-.]{1,63}$`)

	// tenantCodeRegex validates tenant codes: TWC prefix, optional type
	// letter, 4-digit suffix
	tenantCodeRegex = regexp.MustCompile(`^TWC[A-Z]?\d{4}$`)

	// uuidRegex validates UUID format
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidRegistrationNumber checks if the string looks like an external
// legal registration number
func IsValidRegistrationNumber(n string) bool {
	return regNumberRegex.MatchString(n)
}

// IsValidTenantCode checks if the string is a well-formed tenant code
func IsValidTenantCode(code string) bool {
	return tenantCodeRegex.MatchString(code)
}

// IsValidUUID checks if the string is a valid UUID format
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}

// IsValidPassword checks password strength
func IsValidPassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if len(password) > 128 {
		return false, "Password must be at most 128 characters"
	}
	return true, ""
}

// SanitizeString removes potentially dangerous characters for display
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	// Remove control characters except newlines and tabs
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
