package repomanager

import (
	"context"
	"database/sql"

	"github.com/avlasov/fileshare/internal/dbx"
	"github.com/avlasov/fileshare/internal/server/repositories/artifacts"
	"github.com/avlasov/fileshare/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Artifacts(db dbx.DBTX) artifacts.Repository
}
