package ports

import (
	"context"
	"time"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

// LoginResult is returned by a successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Roles     []domain.Role
}

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*LoginResult, error)
}

// TokenIssuer signs a claims set for a user. Implementations are stateless.
type TokenIssuer interface {
	Issue(username string, role domain.Role) (token string, expiresAt time.Time, err error)
}
