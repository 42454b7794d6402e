package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quorali/atrium/pkg/directory"
)

// CredentialStore reads password credentials through the users schema
// procedures.
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a credential store over the shared pool.
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// AuthenticateByPassword checks an email/password pair. The hash
// comparison happens inside the database procedure.
func (s *CredentialStore) AuthenticateByPassword(ctx context.Context, email, password string) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx, `SELECT users.user_auth_password($1, $2)`, email, password).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to authenticate by password: %w", err)
	}
	return ok, nil
}

// FetchByEmail retrieves the credential record for an email address.
func (s *CredentialStore) FetchByEmail(ctx context.Context, email string) (directory.Credential, error) {
	query := `
		SELECT user_id, email
		FROM users.user_auth_fetch_by_email($1)
	`

	var credential directory.Credential
	err := s.db.QueryRowContext(ctx, query, email).Scan(&credential.UserID, &credential.Email)
	if err == sql.ErrNoRows {
		return directory.Credential{}, fmt.Errorf("credential not found for email")
	}
	if err != nil {
		return directory.Credential{}, fmt.Errorf("failed to fetch credential by email: %w", err)
	}

	return credential, nil
}
