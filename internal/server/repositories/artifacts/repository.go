package artifacts

import (
	"context"

	"github.com/avlasov/fileshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error)
	GetByID(ctx context.Context, id string) (*models.Artifact, error)
	// ListVisibleTo returns summaries (no content) of every artifact owned by
	// requesterID plus every public artifact, each exactly once.
	ListVisibleTo(ctx context.Context, requesterID string) ([]*models.Artifact, error)
	Delete(ctx context.Context, id string) error
}
