// Package auth holds the password hashing and session token collaborators
// and carries the authenticated user through a context.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into an opaque hash and checks a
// plaintext against one.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Bcrypt is a Hasher backed by bcrypt. A zero Cost uses bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify uses bcrypt's constant-time comparison.
func (Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
