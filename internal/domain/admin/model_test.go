package admin_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"kaitori/internal/domain/admin"
)

// TestAdmin_SetPassword_CheckPassword verifies the bcrypt round trip.
func TestAdmin_SetPassword_CheckPassword(t *testing.T) {
	a := admin.Admin{Username: "admin"}
	if err := a.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if a.PasswordHash == "admin123" {
		t.Fatal("password stored in plaintext")
	}
	if !a.IsHashed() {
		t.Error("IsHashed = false after SetPassword")
	}
	if a.NeedsRehash() {
		t.Error("NeedsRehash = true for a fresh hash")
	}
	if err := a.CheckPassword("admin123"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := a.CheckPassword("wrong"); !errors.Is(err, admin.ErrWrongPassword) {
		t.Errorf("CheckPassword(wrong) = %v, want ErrWrongPassword", err)
	}
}

// TestAdmin_SetPassword_Empty rejects an empty password.
func TestAdmin_SetPassword_Empty(t *testing.T) {
	a := admin.Admin{Username: "admin"}
	if err := a.SetPassword(""); !errors.Is(err, admin.ErrEmptyPassword) {
		t.Errorf("err = %v, want ErrEmptyPassword", err)
	}
}

// TestAdmin_CheckPassword_Legacy accepts a plaintext row and flags it for rehash.
func TestAdmin_CheckPassword_Legacy(t *testing.T) {
	a := admin.Admin{Username: "admin", PasswordHash: "admin123"}
	if a.IsHashed() {
		t.Fatal("plaintext reported as hashed")
	}
	if !a.NeedsRehash() {
		t.Error("NeedsRehash = false for plaintext")
	}
	if err := a.CheckPassword("admin123"); err != nil {
		t.Errorf("CheckPassword(legacy correct) = %v", err)
	}
	if err := a.CheckPassword("admin12"); !errors.Is(err, admin.ErrWrongPassword) {
		t.Errorf("CheckPassword(legacy wrong) = %v, want ErrWrongPassword", err)
	}
}

// TestAdmin_NeedsRehash_LowCost flags hashes below the configured cost.
func TestAdmin_NeedsRehash_LowCost(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	a := admin.Admin{Username: "admin", PasswordHash: string(hash)}
	if !a.NeedsRehash() {
		t.Error("NeedsRehash = false for MinCost hash")
	}
	if err := a.CheckPassword("admin123"); err != nil {
		t.Errorf("CheckPassword = %v", err)
	}
}

// TestAdmin_Validate requires a username.
func TestAdmin_Validate(t *testing.T) {
	a := admin.Admin{Username: " "}
	if err := a.Validate(); !errors.Is(err, admin.ErrEmptyUsername) {
		t.Errorf("err = %v, want ErrEmptyUsername", err)
	}
}
