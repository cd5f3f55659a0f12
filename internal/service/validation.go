package service

import (
	"net/mail"
	"strings"
	"unicode"
)

const (
	usernameMinLen = 8
	usernameMaxLen = 20
	passwordMinLen = 8

	// Allowed special characters for passwords.
	passwordSpecials = "@$!%*?&"
)

// validateRegistration checks every registration rule and reports all
// violations together, one entry per field.
func validateRegistration(in RegisterInput) ValidationErrors {
	var errs ValidationErrors
	if msg := usernameRuleViolation(in.Username); msg != "" {
		errs.add("username", msg)
	}
	if !validEmail(in.Email) {
		errs.add("email", "invalid email address")
	}
	if msg := passwordRuleViolation(in.Password); msg != "" {
		errs.add("password", msg)
	}
	if in.ConfirmPassword != in.Password {
		errs.add("confirm_password", "passwords must match")
	}
	return errs
}

// validateNewPassword covers change-password and reset-password forms:
// the new password must be present and confirmed. Complexity rules
// apply only at registration.
func validateNewPassword(newPassword, confirm string) ValidationErrors {
	var errs ValidationErrors
	if newPassword == "" {
		errs.add("new_password", "new password is required")
	}
	if confirm != newPassword {
		errs.add("confirm_password", "passwords must match")
	}
	return errs
}

func validateRecipe(in RecipeInput) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(in.Title) == "" {
		errs.add("title", "title is required")
	}
	if strings.TrimSpace(in.Ingredients) == "" {
		errs.add("ingredients", "ingredients are required")
	}
	if strings.TrimSpace(in.Instructions) == "" {
		errs.add("instructions", "instructions are required")
	}
	return errs
}

// usernameRuleViolation returns an empty string when the username is
// 8-20 alphanumeric characters with at least one letter and one digit.
func usernameRuleViolation(username string) string {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return "username must be between 8 and 20 characters"
	}
	var hasLetter, hasDigit bool
	for _, r := range username {
		switch {
		case unicode.IsLetter(r) && r < 128:
			hasLetter = true
		case unicode.IsDigit(r) && r < 128:
			hasDigit = true
		default:
			return "username must contain only letters and numbers"
		}
	}
	if !hasLetter || !hasDigit {
		return "username must contain at least one letter and one number"
	}
	return ""
}

// passwordRuleViolation returns an empty string when the password is at
// least 8 characters and mixes lowercase, uppercase, a digit and one of
// the allowed special characters.
func passwordRuleViolation(password string) string {
	if len(password) < passwordMinLen {
		return "password must be at least 8 characters long"
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return "password must contain at least one lowercase letter, one uppercase letter, one digit, and one special character"
	}
	return ""
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// Reject the "Name <addr>" form; only a bare address is a valid input.
	if err != nil || addr.Address != email {
		return false
	}
	// net/mail accepts dotless domains; form input needs a real one.
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
