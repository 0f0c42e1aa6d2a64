//go:build e2e

package authtest

import (
	"testing"
	"time"

	pkgjwt "courtside/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// MintToken signs a bearer token the way the external identity provider
// would, so e2e requests pass the verifier with a known user id and role.
func MintToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()

	claims := pkgjwt.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "failed to sign test token")
	return signed
}
