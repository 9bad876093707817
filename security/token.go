package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the role granted at login plus the standard JWT
// claims.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateSessionToken signs an HS256 session token for the given role.
func CreateSessionToken(secret []byte, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "attendlog",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
