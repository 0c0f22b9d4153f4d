package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Kind selects which credential collection an account lives in.
type Kind string

const (
	KindAdmin    Kind = "admin"
	KindCustomer Kind = "customer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUsernameTaken = errors.New("username already exists")
var ErrAccountNotFound = errors.New("account not found")

// Account is a stored credential record for either principal kind.
// Admin accounts carry a fixed role tag; customer accounts track the
// time of their last successful login.
type Account struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal is the authenticated identity established by the auth
// middleware for the duration of one request. Role is always set:
// tokens without an explicit role claim resolve to RoleCustomer.
type Principal struct {
	ID       string
	Username string
	Role     string
}
