package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token := issuer.Issue()
	if err := issuer.Validate(token); err != nil {
		t.Fatalf("Validate(Issue()) = %v, want nil", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	err := issuer.Validate(issuer.Issue())
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate on expired token = %v, want ErrExpiredToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("another-secret", time.Hour)

	err := other.Validate(issuer.Issue())
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenTampering(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token := issuer.Issue()

	body, sig, _ := strings.Cut(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		t.Fatalf("decoding token body: %v", err)
	}

	// Push the expiry out without re-signing.
	forged := strings.Replace(string(payload), ":1", ":9", 1)
	tampered := base64.RawURLEncoding.EncodeToString([]byte(forged)) + "." + sig

	if err := issuer.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate on tampered payload = %v, want ErrInvalidToken", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separator", "YWJjZGVm"},
		{"bad base64 body", "!!!." + base64.RawURLEncoding.EncodeToString([]byte("sig"))},
		{"bad base64 signature", base64.RawURLEncoding.EncodeToString([]byte("admin:1:x")) + ".!!!"},
		{"random garbage", "not-a-token-at-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := issuer.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate(%q) = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword(hash, "hunter2") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("CheckPassword accepted a wrong password")
	}
	if CheckPassword("not-a-bcrypt-hash", "hunter2") {
		t.Error("CheckPassword accepted an invalid hash")
	}
}
