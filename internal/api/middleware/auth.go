package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// principalKey is the single context key under which the authenticated
// principal travels. Handlers read it through PrincipalFrom; nothing else
// is attached to the request.
const principalKey = "auth.principal"

// Authenticate extracts and verifies the bearer token, then enforces the
// required role. An empty requiredRole admits any authenticated principal.
//
// Failure contract:
//   - no token                      → 401 "Missing token"
//   - malformed/forged/expired      → 401 "Invalid token" (indistinguishable)
//   - verified but wrong role       → 403 "forbidden"
//
// A syntactically valid token for the wrong principal kind is
// authenticated but unauthorized, hence 403 rather than 401.
func Authenticate(tokens ports.TokenService, requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get("Authorization"))
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if requiredRole != "" && claims.Role != requiredRole {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			c.Set(principalKey, domain.Principal{
				ID:       claims.Subject,
				Username: claims.Username,
				Role:     claims.Role,
			})
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal established by Authenticate.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
