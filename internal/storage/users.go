package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"patrimonio/internal/common"
	"patrimonio/internal/model"
)

// FetchAllUsers returns every stored user, ordered by username. This is the
// fetch-all the login layer uses to assemble its credentials set.
func (s *SQLiteStore) FetchAllUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT username, email, first_name, last_name, password_hash, roles,
		       created_at, updated_at, last_login_at
		FROM users
		ORDER BY username`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	slog.Debug("retrieved users", "count", len(users))
	return users, nil
}

// GetUser returns a single user, or common.ErrNotFound when the username is
// unknown.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	query := `
		SELECT username, email, first_name, last_name, password_hash, roles,
		       created_at, updated_at, last_login_at
		FROM users
		WHERE username = ?`

	row := s.db.QueryRowContext(ctx, query, username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertUser inserts the user or replaces the existing row's profile fields
// and password hash. The ON CONFLICT clause serializes concurrent writes per
// username at the database level.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	query := `
		INSERT INTO users (username, email, first_name, last_name, password_hash, roles)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			password_hash = excluded.password_hash,
			roles = excluded.roles,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.RolesString(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return fmt.Errorf("%w: email %s", common.ErrDuplicateEntry, user.Email)
		}
		return fmt.Errorf("failed to upsert user %s: %w", user.Username, err)
	}

	slog.Debug("upserted user", "username", user.Username)
	return nil
}

// UpdatePasswordHash performs a point update of one user's password hash.
func (s *SQLiteStore) UpdatePasswordHash(ctx context.Context, username, newHash string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}
	if err := validateString(newHash, "newHash"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE username = ?`,
		newHash, username)
	if err != nil {
		return fmt.Errorf("failed to update password for %s: %w", username, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %s", common.ErrNotFound, username)
	}

	return nil
}

// RecordLogin stamps the user's last successful login time.
func (s *SQLiteStore) RecordLogin(ctx context.Context, username string, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE username = ?`,
		at.UTC(), username)
	if err != nil {
		return fmt.Errorf("failed to record login for %s: %w", username, err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var user model.User
	var roles sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if roles.Valid {
		user.Roles = model.ParseRoles(roles.String)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLoginAt = &t
	}

	return &user, nil
}
