package security

import (
	"fmt"

	"github.com/mpalmerin/storefront-backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the password concatenated with the
// server-wide pepper. The salt lives inside the hash string, so hashing the
// same password twice yields different strings that both verify.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password+cfg.Pepper), costFromConfig(cfg))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
// Cost and salt come from the hash itself, so verification keeps working
// after the configured cost changes. A malformed hash is a mismatch, not
// an error.
func VerifyPassword(password, stored string, cfg config.PasswordConfig) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password+cfg.Pepper)) == nil
}

func costFromConfig(cfg config.PasswordConfig) int {
	cost := cfg.BcryptCost
	if cost == 0 {
		return bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		return bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}
