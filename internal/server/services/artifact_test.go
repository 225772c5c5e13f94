package services

import (
	"context"
	"errors"
	"testing"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/dbx"
	"github.com/avlasov/fileshare/internal/server/models"
	"github.com/avlasov/fileshare/internal/server/policy"
	artifactsrepo "github.com/avlasov/fileshare/internal/server/repositories/artifacts"
	"github.com/avlasov/fileshare/internal/server/repositories/repomanager"
	"github.com/avlasov/fileshare/internal/server/repositories/users"
)

func newArtifactService(t *testing.T) *ArtifactService {
	t.Helper()
	return NewArtifactService(nil, repomanager.NewInMemoryRepositoryManager())
}

func TestCreate_Validation(t *testing.T) {
	svc := newArtifactService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		argName    string
		content    string
		visibility models.Visibility
	}{
		{"empty name", "", "content", models.VisibilityPrivate},
		{"empty content", "file.txt", "", models.VisibilityPrivate},
		{"bad visibility", "file.txt", "content", models.Visibility("friends-only")},
		{"empty visibility", "file.txt", "content", models.Visibility("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u-1", tt.argName, tt.content, tt.visibility)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("expected common.ErrorValidation, got %v", err)
			}
		})
	}
}

func TestCreate_SetsOwnerAndID(t *testing.T) {
	svc := newArtifactService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "u-1", "notes.txt", "hello", models.VisibilityPrivate)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected generated id")
	}
	if a.UserID != "u-1" {
		t.Fatalf("owner must be the authenticated subject, got %q", a.UserID)
	}
}

func TestPrivateArtifactLifecycle(t *testing.T) {
	svc := newArtifactService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "secret.txt", "top secret", models.VisibilityPrivate)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// stranger cannot read
	if _, err := svc.GetContent(ctx, created.ID, "bob"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("bob read: expected common.ErrorForbidden, got %v", err)
	}

	// owner reads the content back
	got, err := svc.GetContent(ctx, created.ID, "alice")
	if err != nil {
		t.Fatalf("alice read error: %v", err)
	}
	if got.Content != "top secret" {
		t.Fatalf("unexpected content %q", got.Content)
	}

	// stranger cannot delete
	if err := svc.Delete(ctx, created.ID, "bob"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("bob delete: expected common.ErrorForbidden, got %v", err)
	}

	// owner deletes
	if err := svc.Delete(ctx, created.ID, "alice"); err != nil {
		t.Fatalf("alice delete error: %v", err)
	}

	// gone for everyone, including the owner
	if _, err := svc.GetContent(ctx, created.ID, "alice"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("read after delete: expected common.ErrorNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, "alice"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("second delete: expected common.ErrorNotFound, got %v", err)
	}
}

func TestPublicArtifactLifecycle(t *testing.T) {
	svc := newArtifactService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "shared.txt", "for everyone", models.VisibilityPublic)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// stranger and anonymous requester both read
	if _, err := svc.GetContent(ctx, created.ID, "bob"); err != nil {
		t.Fatalf("bob read error: %v", err)
	}
	if _, err := svc.GetContent(ctx, created.ID, policy.Anonymous); err != nil {
		t.Fatalf("anonymous read error: %v", err)
	}

	// public does not mean deletable by others
	if err := svc.Delete(ctx, created.ID, "bob"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("bob delete: expected common.ErrorForbidden, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "alice"); err != nil {
		t.Fatalf("alice delete error: %v", err)
	}
}

func TestList_OwnedPlusPublicNoDuplicates(t *testing.T) {
	svc := newArtifactService(t)
	ctx := context.Background()

	// alice owns 2 private
	for _, name := range []string{"p1.txt", "p2.txt"} {
		if _, err := svc.Create(ctx, "alice", name, "x", models.VisibilityPrivate); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	// 3 public artifacts owned by others
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := svc.Create(ctx, "bob", name, "y", models.VisibilityPublic); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	// alice also owns a public one; it must appear exactly once
	own, err := svc.Create(ctx, "alice", "mine-public.txt", "z", models.VisibilityPublic)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 summaries, got %d", len(got))
	}

	seen := map[string]int{}
	for _, a := range got {
		seen[a.ID]++
		if a.Content != "" {
			t.Fatalf("summaries must not carry content: %+v", a)
		}
	}
	if seen[own.ID] != 1 {
		t.Fatalf("owned public artifact must appear exactly once, got %d", seen[own.ID])
	}
}

func TestList_ExcludesForeignPrivate(t *testing.T) {
	svc := newArtifactService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "bob", "bobs.txt", "hidden", models.VisibilityPrivate); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty listing, got %d items", len(got))
	}
}

// failingArtifactsRepo simulates a store outage.
type failingArtifactsRepo struct{}

func (failingArtifactsRepo) Create(context.Context, *models.Artifact) (*models.Artifact, error) {
	return nil, errors.New("connection refused")
}
func (failingArtifactsRepo) GetByID(context.Context, string) (*models.Artifact, error) {
	return nil, errors.New("connection refused")
}
func (failingArtifactsRepo) ListVisibleTo(context.Context, string) ([]*models.Artifact, error) {
	return nil, errors.New("connection refused")
}
func (failingArtifactsRepo) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

type failingArtifactsManager struct {
	repomanager.RepositoryManager
}

func (failingArtifactsManager) Users(db dbx.DBTX) users.Repository { return nil }
func (failingArtifactsManager) Artifacts(db dbx.DBTX) artifactsrepo.Repository {
	return failingArtifactsRepo{}
}

func TestArtifactService_StoreUnavailable(t *testing.T) {
	svc := NewArtifactService(nil, failingArtifactsManager{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u", "n", "c", models.VisibilityPublic); !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("Create: expected common.ErrorStoreUnavailable, got %v", err)
	}
	if _, err := svc.List(ctx, "u"); !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("List: expected common.ErrorStoreUnavailable, got %v", err)
	}
	if _, err := svc.GetContent(ctx, "id", "u"); !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("GetContent: expected common.ErrorStoreUnavailable, got %v", err)
	}
	if err := svc.Delete(ctx, "id", "u"); !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("Delete: expected common.ErrorStoreUnavailable, got %v", err)
	}
}
