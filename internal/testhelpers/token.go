package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/types"
)

// TestJWTSecret signs tokens produced by IssueToken.
const TestJWTSecret = "test-jwt-secret"

// IssueToken signs an HS256 token for userID the way the identity provider
// does, with the user id in the subject claim.
func IssueToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
