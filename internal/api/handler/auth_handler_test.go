package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/adoption-api/internal/api"
	"github.com/pawhaven/adoption-api/internal/api/handler"
	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/service"
)

type memAccountRepo struct {
	accounts map[domain.Kind]map[string]*domain.Account
	seq      int
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[domain.Kind]map[string]*domain.Account{
		domain.KindAdmin:    {},
		domain.KindCustomer: {},
	}}
}

func (r *memAccountRepo) FindByUsername(_ context.Context, kind domain.Kind, username string) (*domain.Account, error) {
	a, ok := r.accounts[kind][username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memAccountRepo) Create(_ context.Context, kind domain.Kind, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[kind][account.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.seq++
	clone := *account
	clone.ID = strings.Repeat("0", 23) + string(rune('0'+r.seq))
	r.accounts[kind][clone.Username] = &clone
	copied := clone
	return &copied, nil
}

func (r *memAccountRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	for _, a := range r.accounts[domain.KindCustomer] {
		if a.ID == id {
			a.LastLoginAt = &at
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *memAccountRepo) seedAdmin(t *testing.T, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r.seq++
	r.accounts[domain.KindAdmin][username] = &domain.Account{
		ID: username, Username: username, PasswordHash: string(hash), Role: domain.RoleAdmin,
	}
}

func newAuthTestServer(repo *memAccountRepo) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	tokens := service.NewTokenService("test-secret", time.Hour)
	h := handler.NewAuthHandler(service.NewAuthService(repo, tokens))
	e.POST("/api/admin/login", h.AdminLogin)
	e.POST("/api/customers/register", h.Register)
	e.POST("/api/customers/login", h.CustomerLogin)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginFlow(t *testing.T) {
	e := newAuthTestServer(newMemAccountRepo())

	// Register.
	rec := postJSON(e, "/api/customers/register", `{"username":"alice123","password":"password1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		OK         bool   `json:"ok"`
		CustomerID string `json:"customerId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if !created.OK || created.CustomerID == "" {
		t.Fatalf("unexpected register response: %s", rec.Body.String())
	}

	// Duplicate username.
	rec = postJSON(e, "/api/customers/register", `{"username":"alice123","password":"password2"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	// Wrong password.
	rec = postJSON(e, "/api/customers/login", `{"username":"alice123","password":"wrongpass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}

	// Correct login.
	rec = postJSON(e, "/api/customers/login", `{"username":"alice123","password":"password1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var login struct {
		OK       bool   `json:"ok"`
		Token    string `json:"token"`
		Customer struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"customer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if !login.OK || login.Token == "" || login.Customer.Username != "alice123" {
		t.Fatalf("unexpected login response: %s", rec.Body.String())
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(login.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("login token invalid: %v", err)
	}
	if _, present := claims["role"]; present {
		t.Fatalf("customer token must not carry a role claim")
	}
}

func TestRegister_Validation(t *testing.T) {
	e := newAuthTestServer(newMemAccountRepo())

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","password":"password1"}`},
		{"bad charset", `{"username":"al ice","password":"password1"}`},
		{"short password", `{"username":"alice123","password":"short"}`},
		{"missing password", `{"username":"alice123"}`},
		{"missing username", `{"password":"password1"}`},
	}
	for _, tc := range cases {
		rec := postJSON(e, "/api/customers/register", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", tc.name, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"ok":false`) {
			t.Fatalf("%s: expected error envelope, got %s", tc.name, rec.Body.String())
		}
	}
}

func TestAdminLogin(t *testing.T) {
	repo := newMemAccountRepo()
	repo.seedAdmin(t, "rescueboss", "adminpass1")
	e := newAuthTestServer(repo)

	// Wrong credentials.
	rec := postJSON(e, "/api/admin/login", `{"username":"rescueboss","password":"wrongpass1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Correct credentials.
	rec = postJSON(e, "/api/admin/login", `{"username":"rescueboss","password":"adminpass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var login struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if login.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role in response, got %q", login.User.Role)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(login.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role claim, got %v", claims["role"])
	}
}
