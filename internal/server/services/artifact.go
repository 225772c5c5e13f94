package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/dbx"
	"github.com/avlasov/fileshare/internal/server/models"
	"github.com/avlasov/fileshare/internal/server/policy"
	"github.com/avlasov/fileshare/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ArtifactService stores and serves artifacts under the access policy.
// Existence is always checked before authorization, so a missing artifact is
// NotFound even for a requester who could never have read it.
type ArtifactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewArtifactService(db *sql.DB, m repomanager.RepositoryManager) *ArtifactService {
	return &ArtifactService{db: db, repomanager: m}
}

// Create stores a new artifact owned by ownerID. The owner is the
// authenticated subject, never client-supplied.
func (s *ArtifactService) Create(ctx context.Context, ownerID, name, content string, visibility models.Visibility) (*models.Artifact, error) {
	if name == "" || content == "" || !visibility.Valid() {
		return nil, common.ErrorValidation
	}

	artifact := &models.Artifact{
		ID:         uuid.NewString(),
		UserID:     ownerID,
		Name:       name,
		Content:    content,
		Visibility: visibility,
	}

	repo := s.repomanager.Artifacts(s.db)
	artifact, err := repo.Create(ctx, artifact)
	if err != nil {
		return nil, storeError(err)
	}
	return artifact, nil
}

// List returns summaries (no content) of everything visible to requesterID:
// their own artifacts plus all public ones, each exactly once.
func (s *ArtifactService) List(ctx context.Context, requesterID string) ([]*models.Artifact, error) {
	repo := s.repomanager.Artifacts(s.db)
	result, err := repo.ListVisibleTo(ctx, requesterID)
	if err != nil {
		return nil, storeError(err)
	}
	return result, nil
}

// GetContent returns the artifact with its content if the requester may read
// it. requesterID may be policy.Anonymous.
func (s *ArtifactService) GetContent(ctx context.Context, id, requesterID string) (*models.Artifact, error) {
	repo := s.repomanager.Artifacts(s.db)
	artifact, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, storeError(err)
	}

	if !policy.Allowed(requesterID, artifact.UserID, artifact.Visibility, policy.OpRead) {
		return nil, common.ErrorForbidden
	}

	return artifact, nil
}

// Delete removes the artifact if the requester owns it. Two concurrent
// deletes of the same id produce one success and one NotFound.
func (s *ArtifactService) Delete(ctx context.Context, id, requesterID string) error {
	return s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Artifacts(tx)

		artifact, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return storeError(err)
		}

		if !policy.Allowed(requesterID, artifact.UserID, artifact.Visibility, policy.OpDelete) {
			return common.ErrorForbidden
		}

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return storeError(err)
		}
		return nil
	})
}

// inTx runs fn inside a database transaction when a real connection is
// present. Test doubles without a *sql.DB run fn directly.
func (s *ArtifactService) inTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}
