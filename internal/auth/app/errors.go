package app

import (
	"errors"
	"fmt"
)

// The closed set of provider error kinds. Anything the provider reports
// outside this set is wrapped in a ProviderError carrying the raw code.
var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrNotSignedIn        = errors.New("no signed-in user")
)

// ProviderError carries an unrecognized provider error code.
type ProviderError struct {
	Code string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error: %s", e.Code)
}

// Message translates a provider error into its fixed user-facing message.
// Raw provider codes never reach the user: unknown kinds collapse into a
// generic message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmailInUse):
		return "This email is already in use."
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email address."
	case errors.Is(err, ErrWeakPassword):
		return "Password is too weak (min 6 characters)."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrTooManyAttempts):
		return "Too many attempts. Try again later."
	case errors.Is(err, ErrNotSignedIn):
		return "Failed to resend verification email."
	default:
		return "An unknown error occurred."
	}
}
