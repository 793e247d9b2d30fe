package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yourorg/garagetrack/internal/domain"
)

// TokenManager serializes an Identity into a signed token so the CLI can
// restore its session across invocations. The token never replaces the
// in-process Session; it only survives process exit.
type TokenManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given HMAC secret.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenManager{key: []byte(secret), issuer: issuer, ttl: ttl}
}

type sessionClaims struct {
	TenantID int64  `json:"tenant_id"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying the identity.
func (m *TokenManager) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		TenantID: id.TenantID,
		UserID:   id.UserID,
		Role:     string(id.Role),
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// Verify parses and validates a token and returns the identity it carries.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid session token")
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("session token carries %w", err)
	}
	return Identity{
		TenantID: claims.TenantID,
		UserID:   claims.UserID,
		Role:     role,
		Email:    claims.Email,
	}, nil
}
