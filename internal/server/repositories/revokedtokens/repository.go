// Package revokedtokens declares the repository contract for the jti
// blocklist. Entries are written on logout and consulted on every
// authenticated request.
package revokedtokens

import "context"

// Repository defines operations over the revocation ledger.
type Repository interface {
	// Revoke records the jti with the current UTC timestamp. Revoking the
	// same jti twice must leave the ledger intact.
	Revoke(ctx context.Context, jti string) error

	// IsRevoked reports whether the jti has been recorded.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
