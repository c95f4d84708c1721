package signup

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	PhoneErrorMessage = "Phone number must be 10 digits"
	EmailErrorMessage = "Invalid email format"
)

var contactValidator = validator.New()

// FormatPhone keeps the digits of raw and shapes them progressively into
// "(AAA) BBB-CCCC", dropping anything past ten digits.
func FormatPhone(raw string) string {
	digits := phoneDigits(raw)
	if len(digits) > 10 {
		digits = digits[:10]
	}
	switch {
	case len(digits) < 4:
		return digits
	case len(digits) < 7:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// IsValidPhone reports whether raw holds exactly ten digits.
func IsValidPhone(raw string) bool {
	return len(phoneDigits(raw)) == 10
}

func IsValidEmail(raw string) bool {
	return contactValidator.Var(strings.TrimSpace(raw), "required,email") == nil
}

// PhoneError is the inline message for a phone field; empty input is not
// flagged while typing.
func PhoneError(formatted string) string {
	if formatted == "" || IsValidPhone(formatted) {
		return ""
	}
	return PhoneErrorMessage
}

func EmailError(raw string) string {
	if raw == "" || IsValidEmail(raw) {
		return ""
	}
	return EmailErrorMessage
}

func phoneDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
