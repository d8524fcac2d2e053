// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"patrimonio/internal/model"
)

// CredentialStore defines the contract for the user credential table. It is
// the only shared mutable resource in the application; implementations must
// serialize writes per username (upsert-on-conflict semantics).
type CredentialStore interface {
	// FetchAllUsers returns every stored user, ordered by username.
	FetchAllUsers(ctx context.Context) ([]model.User, error)
	// GetUser returns a single user or common.ErrNotFound.
	GetUser(ctx context.Context, username string) (*model.User, error)
	// UpsertUser inserts the user or, when the username exists, replaces its
	// profile fields and password hash.
	UpsertUser(ctx context.Context, user *model.User) error
	// UpdatePasswordHash performs a point update of one user's password hash.
	UpdatePasswordHash(ctx context.Context, username, newHash string) error
	// RecordLogin stamps the user's last successful login time.
	RecordLogin(ctx context.Context, username string, at time.Time) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
