package google

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type GoogleVerifier struct {
	clientID string
	validate validateFunc
}

// NewVerifier accepts Google ID tokens issued for clientID.
func NewVerifier(clientID string) ports.TokenVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: subject not found in claims", domain.ErrUnauthenticated)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	return &domain.Identity{
		ID:    payload.Subject,
		Email: email,
		Name:  name,
	}, nil
}
