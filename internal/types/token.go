package types

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims represents the claims in a JWT token issued by the identity
// provider. The user id is read from user_id when present, else from sub.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserIDClaim string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`

	// UserID is resolved after validation and never serialized.
	UserID uuid.UUID `json:"-"`
}

// ResolveUserID parses the user id claim into UserID.
func (c *TokenClaims) ResolveUserID() error {
	raw := c.UserIDClaim
	if raw == "" {
		raw = c.Subject
	}
	if raw == "" {
		return errors.New("token has no user id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return errors.New("token user id is not a UUID")
	}
	c.UserID = id
	return nil
}
