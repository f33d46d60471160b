package customerr

import "fmt"

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type DuplicateUserError struct {
	Email string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

type AuthError struct {
	Email string
}

func (e *AuthError) Error() string {
	return "user not found or incorrect credentials"
}

type NoSessionError struct{}

func (e *NoSessionError) Error() string {
	return "no user is logged in"
}

type NotFoundError struct {
	Email string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with email %s not found", e.Email)
}
