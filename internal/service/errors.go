package service

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for auth and recipe flows. Handlers dispatch on these
// with errors.Is; anything else is a storage/transport failure.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailNotFound      = errors.New("email not found")
	ErrWrongOldPassword   = errors.New("incorrect old password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrForbidden          = errors.New("forbidden")
)

// FieldError is a single violated constraint on a named form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every violated field so the caller can show
// them all at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// AsValidationErrors unwraps err into ValidationErrors if it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
