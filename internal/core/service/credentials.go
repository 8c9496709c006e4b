package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// verifyCredential checks a presented secret against a stored one.
// Hashed values go through bcrypt; anything else is legacy plaintext and is
// compared directly. needsRehash is true when the comparison succeeded
// against plaintext, telling the caller to persist a proper hash.
func verifyCredential(stored, presented string) (ok, needsRehash bool) {
	if domain.IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil, false
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1 {
		return true, true
	}
	return false, false
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// tokenIssuer mints the HS256 session tokens for both identity types.
type tokenIssuer struct {
	secret string
	ttl    time.Duration
}

func newTokenIssuer(secret string, ttl time.Duration) tokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return tokenIssuer{secret: secret, ttl: ttl}
}

func (i tokenIssuer) operatorToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"kind":     domain.IdentityOperator,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.secret))
}

func (i tokenIssuer) clientToken(client *domain.Client) (string, error) {
	claims := jwt.MapClaims{
		"kind":      domain.IdentityClient,
		"username":  client.Username,
		"client_id": client.ID,
		"exp":       time.Now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.secret))
}
