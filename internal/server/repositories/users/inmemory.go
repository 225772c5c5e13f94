package users

import (
	"context"
	"sync"
	"time"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by username
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[user.UserName] = &u
	return &u, nil
}

func (r *InMemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}
