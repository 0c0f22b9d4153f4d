package domain

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidUsername = errors.New("username must be 3-24 characters using letters, numbers, . _ -")
var ErrInvalidPassword = errors.New("password must be 8-72 characters")

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// NormalizeUsername trims the username and validates length and charset.
// Both principal kinds share these rules at registration and login.
func NormalizeUsername(username string) (string, error) {
	u := strings.TrimSpace(username)
	if len(u) < 3 || len(u) > 24 {
		return "", ErrInvalidUsername
	}
	if !usernamePattern.MatchString(u) {
		return "", ErrInvalidUsername
	}
	return u, nil
}

// ValidatePassword checks length bounds only. Passwords are never trimmed;
// leading and trailing whitespace is significant.
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrInvalidPassword
	}
	return nil
}
