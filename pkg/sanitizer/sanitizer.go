// Package sanitizer normalizes customer-supplied strings before they are
// embedded in a reservation snapshot.
package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControlChars = regexp.MustCompile(`[\p{Cc}\p{Cf}]+`)
	reMultiSpace   = regexp.MustCompile(`\s+`)

	reValidPhone = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

	// Regions tried when a phone number lacks an international prefix.
	fallbackRegions = []string{"AR", "US"}
)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return reControlChars.ReplaceAllString(s, "")
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// SanitizeName cleans a display name without changing its casing.
func SanitizeName(input string) string {
	p := Pipeline{
		stripControl,
		collapseSpaces,
		trimSpace,
	}
	return p.Apply(input)
}

// SanitizePhone normalizes a phone number to E.164 where possible and
// returns the trimmed input otherwise. Validation rejects garbage upstream;
// this only canonicalizes.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return phone
	}

	if reValidPhone.MatchString(phone) {
		if parsed, err := phonenumbers.Parse(phone, ""); err == nil {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
		return phone
	}

	for _, region := range fallbackRegions {
		if parsed, err := phonenumbers.Parse(phone, region); err == nil && phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}

// SanitizeEmail lowercases and trims an email address.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
