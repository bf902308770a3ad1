// Package auth validates bearer tokens issued by the external identity
// service. This module never issues credentials itself; it only checks that a
// presented token is ours (HS256, matching issuer) and extracts the caller's
// identity.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is what a verified token tells us about the caller. Email is
// optional: not every token carries the claim.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTManager validates HS256 access tokens.
type JWTManager struct {
	secret []byte
	issuer string
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret, issuer string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// ValidateToken parses and validates an access token and returns the
// caller's identity from its claims.
func (m *JWTManager) ValidateToken(_ context.Context, tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	if c.Issuer != m.issuer {
		return Identity{}, fmt.Errorf("invalid issuer: expected %s, got %s", m.issuer, c.Issuer)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject UUID: %w", err)
	}

	return Identity{UserID: userID, Email: c.Email}, nil
}

// IssueToken signs a token for the given identity. Used by tests and local
// tooling; production tokens come from the identity service.
func (m *JWTManager) IssueToken(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: id.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
