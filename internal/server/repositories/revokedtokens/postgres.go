package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastano/authd/internal/dbx"
)

// PostgresRepository implements the jti blocklist over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revoke inserts the jti with the current UTC timestamp. The ON CONFLICT
// clause makes repeated revocations of the same jti a no-op.
func (r *PostgresRepository) Revoke(ctx context.Context, jti string) error {
	query := `
		INSERT INTO revoked_tokens (jti, revoked_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, jti, time.Now().UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// IsRevoked reports whether the jti appears in the ledger.
func (r *PostgresRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}
