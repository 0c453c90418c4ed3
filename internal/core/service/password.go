package service

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost the stored hashes were created with.
const DefaultBcryptCost = 10

// PasswordHasher produces salted one-way bcrypt hashes. The salt is embedded
// in the returned string, so hashing the same password twice yields two
// different values that both verify.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. A malformed hash never matches.
func (h *PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
