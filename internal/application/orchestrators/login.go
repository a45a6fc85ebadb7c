package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"kaitori/internal/domain/admin"
)

// AdminStoreForLogin defines the store interface needed by Login.
type AdminStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (admin.Admin, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Username string `json:"username"`
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AdminStore AdminStoreForLogin
}

// Login errors.
var (
	// ErrInvalidCredentials covers an unknown username and a wrong password alike,
	// so responses do not reveal which usernames exist.
	ErrInvalidCredentials = errors.New("ユーザー名またはパスワードが間違っています")
)

// ExecuteLogin verifies admin credentials.
// No session is issued; callers only learn whether the pair matched.
// PRE: none
// POST: Returns the username on success, ErrInvalidCredentials on any mismatch
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	a, err := deps.AdminStore.GetByUsername(ctx, input.Username)
	if errors.Is(err, admin.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err := a.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	// Upgrade plaintext or low-cost secrets now that the password is known.
	if a.NeedsRehash() {
		if err := a.SetPassword(input.Password); err == nil {
			if err := deps.AdminStore.UpdatePasswordHash(ctx, a.ID, a.PasswordHash); err != nil {
				slog.Warn("auth_event", "event", "rehash_failed", "username", a.Username, "error", err)
			} else {
				slog.Info("auth_event", "event", "password_rehashed", "username", a.Username)
			}
		}
	}

	slog.Info("auth_event", "event", "login_success", "username", a.Username)
	return LoginResult{Username: a.Username}, nil
}
