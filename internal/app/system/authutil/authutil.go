// Package authutil holds password rules and bcrypt hashing for the local
// admin account.
package authutil

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128

	// BcryptCost is the work factor for new hashes.
	BcryptCost = 12
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	ErrPasswordCommon   = errors.New("password is too common")
)

// commonPasswords is a short deny list, compared case-insensitively.
var commonPasswords = map[string]bool{
	"123456": true, "1234567": true, "12345678": true, "123456789": true,
	"password": true, "password1": true, "qwerty": true, "abc123": true,
	"iloveyou": true, "letmein": true, "football": true, "welcome": true,
	"admin": true, "monkey": true, "dragon": true, "sunshine": true,
}

// ValidatePassword checks a candidate password against the length limits
// and the deny list.
func ValidatePassword(pw string) error {
	switch {
	case len(pw) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(pw) > MaxPasswordLength:
		return ErrPasswordTooLong
	case commonPasswords[strings.ToLower(pw)]:
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules describes ValidatePassword for humans.
func PasswordRules() string {
	return fmt.Sprintf("Passwords must be %d to %d characters and not a commonly used password.",
		MinPasswordLength, MaxPasswordLength)
}

// HashPassword returns a bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether pw matches hash. A malformed hash never
// matches.
func CheckPassword(pw, hash string) bool {
	if pw == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
