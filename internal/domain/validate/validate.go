// Package validate holds the pure field predicates used by the signup
// wizard. Each predicate returns an empty string when the value passes and
// a human-readable message otherwise; Step-level helpers collect failures
// into a field-keyed map so callers can surface every failing field at once.
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ErrorMap is keyed by field name. An empty map means the checked step is
// valid and the wizard may advance.
type ErrorMap map[string]string

func (m ErrorMap) Valid() bool { return len(m) == 0 }

const (
	MinAge      = 13
	MaxAge      = 120
	MaxEmailLen = 254
	OTPLength   = 6
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z '\-]*$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]+$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Name checks first/last name fields: non-empty, at least two characters,
// letters plus spaces, hyphens and apostrophes.
func Name(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return field + " is required"
	}
	if len(v) < 2 {
		return field + " must be at least 2 characters"
	}
	if !nameRe.MatchString(v) {
		return field + " may only contain letters, spaces, hyphens and apostrophes"
	}
	return ""
}

// Phone strips spaces, parentheses and hyphens before matching. The stripped
// value must be an international-looking number with at least 10 digits.
func Phone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "phone number is required"
	}
	stripped := strings.NewReplacer(" ", "", "(", "", ")", "", "-", "").Replace(v)
	if !phoneRe.MatchString(stripped) {
		return "phone number may only contain digits and an optional leading +"
	}
	digits := strings.TrimPrefix(stripped, "+")
	if len(digits) < 10 {
		return "phone number must have at least 10 digits"
	}
	return ""
}

func Email(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "email is required"
	}
	if len(v) > MaxEmailLen {
		return "email is too long"
	}
	if !emailRe.MatchString(v) {
		return "email must look like local@domain.tld"
	}
	return ""
}

// DateOfBirth expects an ISO date (2006-01-02). The computed age accounts
// for a birthday that has not yet occurred this year.
func DateOfBirth(v string, now time.Time) string {
	if strings.TrimSpace(v) == "" {
		return "date of birth is required"
	}
	dob, err := time.Parse("2006-01-02", v)
	if err != nil {
		return "date of birth must be a valid date (YYYY-MM-DD)"
	}
	if dob.After(now) {
		return "date of birth cannot be in the future"
	}
	age := Age(dob, now)
	if age < MinAge {
		return "you must be at least 13 years old"
	}
	if age > MaxAge {
		return "date of birth is not plausible"
	}
	return ""
}

// Age returns completed years between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	// Birthday not reached yet this year.
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// Password requires at least 8 characters with one lowercase, one uppercase
// and one digit.
func Password(v string) string {
	if v == "" {
		return "password is required"
	}
	if len(v) < 8 {
		return "password must be at least 8 characters"
	}
	var lower, upper, digit bool
	for _, r := range v {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return "password must contain a lowercase letter, an uppercase letter and a digit"
	}
	return ""
}

func ConfirmPassword(password, confirm string) string {
	if confirm != password {
		return "passwords do not match"
	}
	return ""
}

// OTP checks the six code slots: every slot filled with exactly one digit.
func OTP(slots []string) string {
	if len(slots) != OTPLength {
		return "verification code must have 6 digits"
	}
	for _, s := range slots {
		if len(s) != 1 || s[0] < '0' || s[0] > '9' {
			return "please enter the complete 6-digit code"
		}
	}
	return ""
}

// Topics requires a non-empty selection.
func Topics(topics []string) string {
	if len(topics) == 0 {
		return "please select at least one topic"
	}
	return ""
}
