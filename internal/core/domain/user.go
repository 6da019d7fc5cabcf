package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is a caller verified by an Authenticator. ID is opaque and comes
// from the identity provider.
type Identity struct {
	ID    string
	Email string
	Name  string
}
