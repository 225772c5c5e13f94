package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+artifacts`).
		WithArgs("a-1", "u-1", "notes.txt", "hello", models.VisibilityPrivate).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	a := &models.Artifact{ID: "a-1", UserID: "u-1", Name: "notes.txt", Content: "hello", Visibility: models.VisibilityPrivate}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected artifact: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*name,\s*content,\s*visibility,\s*created_at\s+FROM\s+artifacts`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "content", "visibility", "created_at"}).
		AddRow("a-1", "u-1", "notes.txt", "hello", "public", time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*name,\s*content,\s*visibility,\s*created_at\s+FROM\s+artifacts`).
		WithArgs("a-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Content != "hello" || got.Visibility != models.VisibilityPublic {
		t.Fatalf("unexpected artifact: %+v", got)
	}
}

func TestListVisibleTo(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "visibility", "created_at"}).
		AddRow("a-1", "u-1", "mine.txt", "private", time.Now()).
		AddRow("a-2", "u-2", "theirs.txt", "public", time.Now())
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*name,\s*visibility,\s*created_at\s+FROM\s+artifacts\s+WHERE\s+user_id\s*=\s*\$1\s+OR\s+visibility\s*=\s*'public'`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListVisibleTo(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListVisibleTo error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	for _, a := range got {
		if a.Content != "" {
			t.Fatalf("summaries must not carry content: %+v", a)
		}
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+artifacts\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "a-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_AlreadyGone(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+artifacts\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "a-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
