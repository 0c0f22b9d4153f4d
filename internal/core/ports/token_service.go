package ports

import "github.com/pawhaven/adoption-api/internal/core/domain"

// TokenService issues and verifies signed bearer tokens. Verification is
// stateless and safe for unlimited concurrent use.
type TokenService interface {
	Issue(principal domain.Principal) (string, error)
	// Verify returns domain.ErrTokenInvalid for malformed, forged, and
	// expired tokens alike.
	Verify(raw string) (domain.Claims, error)
}
