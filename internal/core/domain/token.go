package domain

import "errors"

// ErrTokenInvalid covers malformed, forged, and expired tokens alike.
// The authorization boundary must not reveal which of the three it was.
var ErrTokenInvalid = errors.New("invalid token")

var ErrForbidden = errors.New("forbidden")

// Claims are the decoded fields of a verified bearer token.
type Claims struct {
	Subject  string
	Username string
	Role     string
}
