package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/directory"
)

// UserStore reads user records through the users schema procedures.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a user store over the shared pool.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// FetchByID retrieves one user record by id.
func (s *UserStore) FetchByID(ctx context.Context, userID uuid.UUID) (directory.User, error) {
	query := `
		SELECT user_id, active, created, first_name, middle_name, last_name, prefix, suffix, email
		FROM users.users_fetch_by_id($1)
	`

	var user directory.User
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Active,
		&user.Created,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.Prefix,
		&user.Suffix,
		&user.Email,
	)
	if err == sql.ErrNoRows {
		return directory.User{}, fmt.Errorf("user not found: %s", userID)
	}
	if err != nil {
		return directory.User{}, fmt.Errorf("failed to fetch user by id: %w", err)
	}

	return user, nil
}
