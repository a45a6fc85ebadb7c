package admin

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost for stored admin passwords.
const PasswordCost = 12

// Domain errors
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWrongPassword = errors.New("incorrect password")
	ErrNotFound      = errors.New("admin not found")
)

// Admin holds a back-office login credential.
type Admin struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

// Validate checks if the Admin has valid data.
// PRE: Admin struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Admin) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to a bcrypt hash
func (a *Admin) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// Rows written before hashing was introduced hold the literal password;
// those are compared in constant time.
// PRE: none
// INVARIANT: Admin fields are not mutated
func (a *Admin) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" || plaintext == "" {
		return ErrWrongPassword
	}
	if !a.IsHashed() {
		if subtle.ConstantTimeCompare([]byte(a.PasswordHash), []byte(plaintext)) != 1 {
			return ErrWrongPassword
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsHashed reports whether PasswordHash is a bcrypt hash.
// INVARIANT: Admin fields are not mutated
func (a *Admin) IsHashed() bool {
	_, err := bcrypt.Cost([]byte(a.PasswordHash))
	return err == nil
}

// NeedsRehash reports whether the stored secret is plaintext or below PasswordCost.
// INVARIANT: Admin fields are not mutated
func (a *Admin) NeedsRehash() bool {
	cost, err := bcrypt.Cost([]byte(a.PasswordHash))
	return err != nil || cost < PasswordCost
}
