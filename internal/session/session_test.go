package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestManager(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	actor := Actor{RoomID: "room-1", UserID: "u_mom"}

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := m.Issue(actor)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		got, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if got != actor {
			t.Errorf("Expected %+v, got %+v", actor, got)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, _ := NewManager("other-secret", time.Hour).Issue(actor)
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		old := NewManager("test-secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _ := old.Issue(actor)
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := m.Validate(""); !errors.Is(err, ErrMissingToken) {
			t.Errorf("Expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("UnsignedRejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RoomID: "room-1", UserID: "u_mom"})
		s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := m.Validate(s); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
