// Package auth implements the store-facing half of the login feature:
// password hashing, credential verification and registration. Session and
// cookie handling belong to the surrounding presentation layer, not here.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"patrimonio/internal/common"
	"patrimonio/internal/model"
	"patrimonio/internal/service"
)

// DefaultRole is assigned to newly registered users.
const DefaultRole = "viewer"

// Authenticator verifies and manages credentials against the store.
type Authenticator struct {
	store service.CredentialStore
}

// New creates an Authenticator backed by the given credential store.
func New(store service.CredentialStore) *Authenticator {
	return &Authenticator{store: store}
}

// Register hashes the password and upserts the user with the default role.
func (a *Authenticator) Register(ctx context.Context, username, email, firstName, lastName, password string) (*model.User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", common.ErrInvalidCredentials)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Roles:        []string{DefaultRole},
	}

	if err := a.store.UpsertUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("registered user", "username", username)
	return user, nil
}

// Login verifies the password against the stored hash and records the login
// time. Unknown users and wrong passwords both surface as
// common.ErrInvalidCredentials so callers cannot distinguish them.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := a.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := a.store.RecordLogin(ctx, username, time.Now()); err != nil {
		slog.Warn("failed to record login time", "username", username, "error", err)
	}

	return user, nil
}

// ResetPassword verifies the old password, then writes a new hash.
func (a *Authenticator) ResetPassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if _, err := a.Login(ctx, username, oldPassword); err != nil {
		return err
	}
	if newPassword == "" {
		return fmt.Errorf("%w: empty password", common.ErrInvalidCredentials)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return a.store.UpdatePasswordHash(ctx, username, hash)
}

// HashPassword produces a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
