package ports

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) (string, *domain.Account, error)
	RegisterCustomer(ctx context.Context, username, password string) (*domain.Account, error)
	CustomerLogin(ctx context.Context, username, password string) (string, *domain.Account, error)
}
