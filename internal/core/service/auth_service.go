package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// AuthService implements admin login and customer registration/login.
// Passwords are compared only via bcrypt; the plaintext never persists
// and never reaches a log line.
type AuthService struct {
	accounts ports.AccountRepository
	tokens   ports.TokenService
}

func NewAuthService(accounts ports.AccountRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

// AdminLogin authenticates against the admin credential collection and
// issues a token carrying the admin role claim.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, *domain.Account, error) {
	account, err := s.authenticate(ctx, domain.KindAdmin, username, password)
	if err != nil {
		return "", nil, err
	}
	if account.Role != domain.RoleAdmin {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Principal{ID: account.ID, Username: account.Username, Role: domain.RoleAdmin})
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// RegisterCustomer creates a customer account. Username uniqueness is
// enforced by the store's unique index, surfacing as ErrUsernameTaken.
func (s *AuthService) RegisterCustomer(ctx context.Context, username, password string) (*domain.Account, error) {
	u, err := domain.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     u,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.accounts.Create(ctx, domain.KindCustomer, account)
}

// CustomerLogin authenticates a customer, records the login time, and
// issues a token without a role claim.
func (s *AuthService) CustomerLogin(ctx context.Context, username, password string) (string, *domain.Account, error) {
	account, err := s.authenticate(ctx, domain.KindCustomer, username, password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	if err := s.accounts.TouchLastLogin(ctx, account.ID, now); err != nil {
		return "", nil, err
	}
	account.LastLoginAt = &now

	token, err := s.tokens.Issue(domain.Principal{ID: account.ID, Username: account.Username, Role: domain.RoleCustomer})
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// authenticate resolves the account and checks the password. An unknown
// username and a wrong password both collapse into ErrInvalidCredentials
// so login responses cannot be used to probe for usernames.
func (s *AuthService) authenticate(ctx context.Context, kind domain.Kind, username, password string) (*domain.Account, error) {
	u, err := domain.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByUsername(ctx, kind, u)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}
