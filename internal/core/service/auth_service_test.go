package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[domain.Kind]map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: map[domain.Kind]map[string]*domain.Account{
		domain.KindAdmin:    {},
		domain.KindCustomer: {},
	}}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, kind domain.Kind, username string) (*domain.Account, error) {
	a, ok := r.accounts[kind][username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Create(_ context.Context, kind domain.Kind, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[kind][account.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = account.Username // deterministic for assertions
	r.accounts[kind][copy.Username] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	for _, a := range r.accounts[domain.KindCustomer] {
		if a.ID == id {
			a.LastLoginAt = &at
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) addAdmin(t *testing.T, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r.accounts[domain.KindAdmin][username] = &domain.Account{
		ID: username, Username: username, PasswordHash: string(hash), Role: domain.RoleAdmin,
	}
}

func newAuthService(repo *stubAccountRepo) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour))
}

func decodeClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestRegisterCustomer_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	account, err := svc.RegisterCustomer(context.Background(), "alice123", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.PasswordHash == "password1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("password1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != "" {
		t.Fatalf("customer accounts carry no role tag, got %q", account.Role)
	}
}

func TestRegisterCustomer_TrimsUsername(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	account, err := svc.RegisterCustomer(context.Background(), "  alice123  ", "password1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.Username != "alice123" {
		t.Fatalf("expected trimmed username, got %q", account.Username)
	}
}

func TestRegisterCustomer_Validation(t *testing.T) {
	svc := newAuthService(newStubAccountRepo())

	if _, err := svc.RegisterCustomer(context.Background(), "ab", "password1"); err != domain.ErrInvalidUsername {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if _, err := svc.RegisterCustomer(context.Background(), "alice123", "short"); err != domain.ErrInvalidPassword {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestRegisterCustomer_Duplicate(t *testing.T) {
	svc := newAuthService(newStubAccountRepo())

	if _, err := svc.RegisterCustomer(context.Background(), "alice123", "password1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.RegisterCustomer(context.Background(), "alice123", "password2"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAdminLogin_TokenCarriesRole(t *testing.T) {
	repo := newStubAccountRepo()
	repo.addAdmin(t, "rescueboss", "adminpass1")
	svc := newAuthService(repo)

	token, account, err := svc.AdminLogin(context.Background(), "rescueboss", "adminpass1")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if account.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %q", account.Role)
	}
	claims := decodeClaims(t, token)
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role claim %q, got %v", domain.RoleAdmin, claims["role"])
	}
}

func TestAdminLogin_UnknownOrWrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	repo.addAdmin(t, "rescueboss", "adminpass1")
	svc := newAuthService(repo)

	// Unknown username and wrong password are indistinguishable.
	if _, _, err := svc.AdminLogin(context.Background(), "ghostuser", "adminpass1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown admin: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.AdminLogin(context.Background(), "rescueboss", "wrongpass1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCustomerLogin_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	if _, err := svc.RegisterCustomer(context.Background(), "alice123", "password1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, account, err := svc.CustomerLogin(context.Background(), "alice123", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if account.LastLoginAt == nil {
		t.Fatalf("expected lastLoginAt to be recorded")
	}
	stored := repo.accounts[domain.KindCustomer]["alice123"]
	if stored.LastLoginAt == nil {
		t.Fatalf("expected lastLoginAt persisted")
	}

	claims := decodeClaims(t, token)
	if _, present := claims["role"]; present {
		t.Fatalf("customer token must not carry a role claim")
	}
	if claims["username"] != "alice123" {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
}

func TestCustomerLogin_InvalidCredentials(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthService(repo)

	if _, err := svc.RegisterCustomer(context.Background(), "alice123", "password1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.CustomerLogin(context.Background(), "alice123", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.CustomerLogin(context.Background(), "nobody99", "password1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
