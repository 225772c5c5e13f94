package artifacts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests.
type InMemoryRepository struct {
	mu        sync.Mutex
	artifacts map[string]*models.Artifact
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{artifacts: make(map[string]*models.Artifact)}
}

func (r *InMemoryRepository) Create(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := *artifact
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.artifacts[artifact.ID] = &a
	return &a, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.artifacts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *InMemoryRepository) ListVisibleTo(ctx context.Context, requesterID string) ([]*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Artifact
	for _, a := range r.artifacts {
		if a.UserID == requesterID || a.Visibility == models.VisibilityPublic {
			summary := *a
			summary.Content = ""
			result = append(result, &summary)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.artifacts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.artifacts, id)
	return nil
}
