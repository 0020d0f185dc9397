// Package repomanager vends repository implementations bound to a DB handle
// and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/campdir/campdir/internal/dbx"
	"github.com/campdir/campdir/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the provided DBTX, which
// may be a plain connection or an open transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
