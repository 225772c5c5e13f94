package repomanager

import (
	"context"
	"database/sql"

	"github.com/avlasov/fileshare/internal/dbx"
	"github.com/avlasov/fileshare/internal/server/repositories/artifacts"
	"github.com/avlasov/fileshare/internal/server/repositories/users"
)

// InMemoryRepositoryManager returns the same map-backed repositories
// regardless of the DBTX handle. Used in tests; there is no real
// transactionality, but single-operation atomicity is preserved by the
// repositories' own locking.
type InMemoryRepositoryManager struct {
	users     *users.InMemoryRepository
	artifacts *artifacts.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     users.NewInMemoryRepository(),
		artifacts: artifacts.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Artifacts(db dbx.DBTX) artifacts.Repository {
	return m.artifacts
}
