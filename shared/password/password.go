package password

import (
	"errors"
	"fmt"
	"hostmaster/shared/failure"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest input bcrypt accepts.
const MaxLength = 72

var (
	ErrEmptyPassword   = failure.BadRequestFromString("password cannot be empty")
	ErrPasswordTooLong = failure.BadRequestFromString(fmt.Sprintf("password cannot exceed %d bytes", MaxLength))
	ErrInvalidPassword = errors.New("invalid password")
)

// Hash returns the bcrypt hash stored in users.hashed_password.
func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmptyPassword
	case len(plain) > MaxLength:
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword for any mismatch, including an empty input or a malformed hash.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrInvalidPassword
	}

	return nil
}
