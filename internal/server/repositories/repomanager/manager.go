// Package repomanager bundles repository constructors behind one interface so
// services can obtain repositories bound to either a plain connection or a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dcastano/authd/internal/dbx"
	"github.com/dcastano/authd/internal/server/repositories/revokedtokens"
	"github.com/dcastano/authd/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
