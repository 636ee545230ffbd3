// Package session issues and checks signed actor tokens.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Actor is who a request acts as: a user inside one room. The role is
// deliberately absent; it is looked up in the room on every call.
type Actor struct {
	RoomID string
	UserID string
}

// Claims represents the custom JWT claims for a room session.
type Claims struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager handles JWT token generation and validation.
type Manager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewManager creates a new JWT manager with the given secret and token duration.
func NewManager(secretKey string, tokenDuration time.Duration) *Manager {
	return &Manager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Issue creates a new token for the actor.
func (m *Manager) Issue(a Actor) (string, error) {
	now := m.now()
	claims := &Claims{
		RoomID: a.RoomID,
		UserID: a.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and validates a token, returning the actor if valid.
func (m *Manager) Validate(tokenString string) (Actor, error) {
	if tokenString == "" {
		return Actor{}, ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.RoomID == "" || claims.UserID == "" {
		return Actor{}, ErrInvalidToken
	}
	return Actor{RoomID: claims.RoomID, UserID: claims.UserID}, nil
}
