package utils

import "strings"

const (
	// NUBANLength is the Nigerian Uniform Bank Account Number length.
	NUBANLength = 10
	// PINLength is the transaction PIN length.
	PINLength = 4
	// OTPLength is the withdrawal confirmation code length.
	OTPLength = 6
)

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDigits reports whether s is non-empty and consists solely of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsNUBAN reports whether s is a well-formed 10-digit account number.
func IsNUBAN(s string) bool {
	return len(s) == NUBANLength && IsDigits(s)
}

// IsPIN reports whether s is a well-formed 4-digit transaction PIN.
func IsPIN(s string) bool {
	return len(s) == PINLength && IsDigits(s)
}
