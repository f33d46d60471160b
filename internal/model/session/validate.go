package session

import (
	"regexp"
	"strings"

	"max.ks1230/expense-tracker/internal/customerr"
)

const minPasswordLength = 6

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// ValidateRegistration applies the sign-up form rules. Register itself
// only requires the fields to be present.
func ValidateRegistration(name, email, password string) error {
	if err := requireFields(name, email, password); err != nil {
		return err
	}
	if !namePattern.MatchString(name) {
		return &customerr.ValidationError{Field: "name", Reason: "should only contain letters"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &customerr.ValidationError{Field: "email", Reason: "is invalid"}
	}
	if len(password) < minPasswordLength {
		return &customerr.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	return nil
}
