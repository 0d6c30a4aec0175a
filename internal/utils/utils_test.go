package utils

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("test-secret")

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(secret, "user-1", "doctor", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ValidateJWT(secret, token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "doctor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := ValidateJWT([]byte("other"), token); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
	if _, err := GenerateJWT(nil, "u", "patient", time.Hour); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	live, _ := GenerateJWT(secret, "u", "patient", time.Hour)
	if expired, ok := TokenExpired(live, now); !ok || expired {
		t.Fatalf("live token: expired=%v ok=%v", expired, ok)
	}

	dead, _ := GenerateJWT(secret, "u", "patient", -time.Minute)
	if expired, ok := TokenExpired(dead, now); !ok || !expired {
		t.Fatalf("expired token: expired=%v ok=%v", expired, ok)
	}

	if _, ok := TokenExpired("opaque-session-token", now); ok {
		t.Fatal("opaque token must not be judged locally")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("secret", hash) {
		t.Fatal("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password matched")
	}
}
