// Package authutil holds password hashing and login input helpers.
package authutil

import (
	"errors"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost used when the first admin is seeded.
const BcryptCost = 12

// ErrInvalidCredentials is the only failure a login caller ever sees.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// HashPassword returns the bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches hash.
func CheckPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NormalizeEmail trims and case-folds an email for storage and lookup.
func NormalizeEmail(email string) string {
	return text.Fold(strings.TrimSpace(email))
}
