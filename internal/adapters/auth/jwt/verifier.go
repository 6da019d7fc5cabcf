package jwt

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type claims struct {
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	UserMetadata userMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type userMetadata struct {
	FullName string `json:"full_name"`
	Name     string `json:"name"`
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier accepts HS256 access tokens signed with secret. When audience is
// set the aud claim must contain it.
func NewVerifier(secret, audience string) ports.TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	var c claims
	_, err := v.parser.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}

	return &domain.Identity{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.displayName(),
	}, nil
}

func (c *claims) displayName() string {
	switch {
	case c.UserMetadata.FullName != "":
		return c.UserMetadata.FullName
	case c.UserMetadata.Name != "":
		return c.UserMetadata.Name
	default:
		return c.Name
	}
}
