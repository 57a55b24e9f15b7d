// internal/pkg/auth/password.go
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/your-org/seed-marketplace/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

var commonPasswords = []string{
	"password", "123456", "12345678", "qwerty", "letmein", "welcome", "farmer",
}

// PasswordManager handles password operations
type PasswordManager struct {
	config *config.Config
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		config: cfg,
	}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := p.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword validates password strength
func (p *PasswordManager) ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must be no more than %d bytes long", maxPasswordBytes)
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasLetter || !hasNumber {
		return fmt.Errorf("password must contain at least one letter and one number")
	}

	lower := strings.ToLower(password)
	for _, common := range commonPasswords {
		if strings.Contains(lower, common) {
			return fmt.Errorf("password is too common and easily guessable")
		}
	}

	return nil
}
