package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenSubject = "admin"

var (
	ErrInvalidToken = errors.New("token is malformed or has a bad signature")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenIssuer mints and validates admin session tokens. A token is
// base64url(subject:expiry:id) + "." + base64url(hmac-sha256 signature),
// so validation needs no server-side session state.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (t *TokenIssuer) Issue() string {
	expiry := time.Now().Add(t.ttl).Unix()
	payload := fmt.Sprintf("%s:%d:%s", tokenSubject, expiry, uuid.New().String())

	return base64.RawURLEncoding.EncodeToString([]byte(payload)) +
		"." +
		base64.RawURLEncoding.EncodeToString(t.sign(payload))
}

func (t *TokenIssuer) Validate(token string) error {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidToken
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return ErrInvalidToken
	}

	sigBytes, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ErrInvalidToken
	}

	payload := string(payloadBytes)
	if !hmac.Equal(sigBytes, t.sign(payload)) {
		return ErrInvalidToken
	}

	parts := strings.SplitN(payload, ":", 3)
	if len(parts) != 3 || parts[0] != tokenSubject {
		return ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	if time.Now().Unix() >= expiry {
		return ErrExpiredToken
	}

	return nil
}

func (t *TokenIssuer) sign(payload string) []byte {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// CheckPassword compares a bcrypt hash with a candidate password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword generates a bcrypt hash for a password, used by
// operators to seed ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
