package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

const (
	PasswordResetScope string = "password_reset"
	tokenLength        int    = 32
)

// Token is a single use secret mailed to a user. Only its SHA-256 hash is
// stored.
type Token struct {
	Plaintext string
	Hash      []byte
	UserId    int
	Expiry    time.Time
	Scope     string
}

func GenerateToken(userId int, ttl time.Duration, scope string) (*Token, error) {
	randomBytes := make([]byte, tokenLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(randomBytes)
	hash := HashToken(plaintext)

	token := &Token{
		Plaintext: plaintext,
		Hash:      hash,
		UserId:    userId,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}

	return token, nil
}

func HashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

type TokenRepository interface {
	Create(context.Context, *Token) error
	DeleteAllForUser(ctx context.Context, tokenScope string, userID int) error
}
