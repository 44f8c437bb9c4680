package auth

import (
	"strings"
	"testing"

	"github.com/your-org/rental-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testManager()

	hash, err := pm.HashPassword("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "password123" {
		t.Fatal("expected hash to differ from plaintext")
	}

	if err := pm.VerifyPassword("password123", hash); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}
	if err := pm.VerifyPassword("wrongpassword", hash); err == nil {
		t.Error("expected mismatched password to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	pm := testManager()

	if err := pm.ValidatePassword("short"); err == nil {
		t.Error("expected error for password under 8 characters")
	}
	if err := pm.ValidatePassword(strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for password over 72 bytes")
	}
	if err := pm.ValidatePassword("password123"); err != nil {
		t.Errorf("unexpected error for valid password: %v", err)
	}
}
