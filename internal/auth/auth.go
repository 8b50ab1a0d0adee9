// Package auth resolves the caller's identity and role from bearer
// tokens and answers role-hierarchy questions.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seasonal/ladder/internal/domain/model"
)

// Sentinel kinds for auth errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("missing bearer token")
)

// roleLevel is the privilege hierarchy: any role covers the ones below.
var roleLevel = map[model.Role]int{
	model.RoleUser:      1,
	model.RoleOrganizer: 2,
	model.RoleAdmin:     3,
}

// HasRole reports whether userRole meets or exceeds requiredRole.
// Unknown roles never qualify.
func HasRole(userRole, requiredRole model.Role) bool {
	have, ok := roleLevel[userRole]
	if !ok {
		return false
	}
	want, ok := roleLevel[requiredRole]
	if !ok {
		return false
	}
	return have >= want
}

// Claims is the JWT payload carried by API callers.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller.
type Identity struct {
	UserID string
	Role   model.Role
}

// ParseToken validates a signed token and extracts the caller identity.
// Tokens with an unknown role resolve to USER.
func ParseToken(secret, token string) (Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	role := claims.Role
	if !role.Valid() {
		role = model.RoleUser
	}
	return Identity{UserID: claims.Subject, Role: role}, nil
}

// IssueToken signs a token for the given user and role. Used by the
// login surface and by tests.
func IssueToken(secret, userID string, role model.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// FromHeader extracts the bearer token from an Authorization header
// value.
func FromHeader(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrNoToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
