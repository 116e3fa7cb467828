// Package cli holds operator commands that act on the database directly.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/shim/internal/models"
	"github.com/terraincognita07/shim/internal/security"
	"github.com/terraincognita07/shim/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	temporaryPasswordLength   = 12
	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	// Temporary passwords are redrawn until they satisfy the login policy.
	maxTemporaryPasswordDraws = 16
)

type PasswordResetStore interface {
	FindByNormalizedEmail(email string) (models.User, error)
	UpdatePasswordHash(userID uint, passwordHash string) error
}

type ResetPasswordOptions struct {
	Email string
	// Prompt reads the new password from Stdin without echo instead of generating one.
	Prompt bool
	Stdin  *os.File
	Out    io.Writer
}

// readPassword is swapped in tests; terminals are not available there.
var readPassword = readPasswordNoEcho

func ResetPassword(store PasswordResetStore, options ResetPasswordOptions) error {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	email := services.NormalizeAuthEmail(options.Email)
	if email == "" {
		return errors.New("a valid email is required")
	}

	user, err := store.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password, generated, err := newPassword(options, out)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := store.UpdatePasswordHash(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", email)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

func newPassword(options ResetPasswordOptions, out io.Writer) (string, bool, error) {
	if !options.Prompt {
		password, err := generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	fmt.Fprint(out, "New password: ")
	raw, err := readPassword(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if err := services.ValidatePasswordStrength(password); err != nil {
		return "", false, fmt.Errorf("password needs at least 8 characters with letters and digits: %w", err)
	}
	return password, false, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	for draw := 0; draw < maxTemporaryPasswordDraws; draw++ {
		password, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
	return "", errors.New("could not draw a password with letters and digits")
}
