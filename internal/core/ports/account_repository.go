package ports

import (
	"context"
	"time"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

// AccountRepository persists credential records for both principal kinds.
type AccountRepository interface {
	// FindByUsername returns domain.ErrAccountNotFound when no record exists.
	FindByUsername(ctx context.Context, kind domain.Kind, username string) (*domain.Account, error)
	// Create returns domain.ErrUsernameTaken when the username is already
	// used for that kind. Uniqueness is enforced by the store, not by a
	// read-then-write check.
	Create(ctx context.Context, kind domain.Kind, account *domain.Account) (*domain.Account, error)
	// TouchLastLogin records a successful customer login.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
