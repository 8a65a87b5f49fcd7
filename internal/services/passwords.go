package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"school_transport/internal/models"
)

// BcryptCost is fixed so hashes stay compatible with existing accounts.
const BcryptCost = 10

const generatedPasswordLen = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DefaultPassword returns the initial password of an account created without
// one: a fixed value per known role, a random token otherwise.
func DefaultPassword(role models.Role) (string, error) {
	switch role {
	case models.RoleDriver:
		return "driver123", nil
	case models.RoleParent:
		return "parent123", nil
	case models.RoleAdmin:
		return "admin123", nil
	default:
		return RandomPassword()
	}
}

// RandomPassword returns a URL-safe token of generatedPasswordLen characters.
func RandomPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:generatedPasswordLen], nil
}
