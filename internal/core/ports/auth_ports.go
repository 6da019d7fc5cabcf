package ports

import (
	"context"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

// TokenVerifier turns a bearer token issued by the identity provider into a
// verified identity. Invalid, expired or malformed tokens yield an error
// wrapping domain.ErrUnauthenticated.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
