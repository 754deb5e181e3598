package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultHasher is used when no hasher is configured explicitly
var DefaultHasher = BcryptHasher{}

// Bcrypt password hasher
// Zero value uses the bcrypt default cost
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
