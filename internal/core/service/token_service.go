package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// TokenService signs and verifies HS256 bearer tokens. The signing secret
// is injected at construction and lives for the life of the process;
// rotating it invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue encodes the principal's identity. Only admin tokens carry a role
// claim; customer tokens are identified by its absence.
func (s *TokenService) Issue(p domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":      p.ID,
		"username": p.Username,
		"exp":      s.now().Add(s.ttl).Unix(),
	}
	if p.Role == domain.RoleAdmin {
		claims["role"] = domain.RoleAdmin
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a raw token. All failure modes collapse into
// domain.ErrTokenInvalid so callers cannot distinguish a forged token from
// a stale one. A token without an explicit role claim verifies to the
// customer role.
func (s *TokenService) Verify(raw string) (domain.Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if sub == "" || username == "" {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleCustomer
	}

	return domain.Claims{Subject: sub, Username: username, Role: role}, nil
}
