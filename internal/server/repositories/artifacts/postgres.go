// Package artifacts provides persistence for stored artifacts.
package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/avlasov/fileshare/internal/dbx"
	"github.com/avlasov/fileshare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error) {
	query :=
		`INSERT INTO artifacts (id, user_id, name, content, visibility)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		artifact.ID, artifact.UserID, artifact.Name, artifact.Content, artifact.Visibility).
		Scan(&artifact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return artifact, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Artifact, error) {
	query :=
		`SELECT id, user_id, name, content, visibility, created_at FROM artifacts
		 WHERE id = $1
		 `

	a := &models.Artifact{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.UserID, &a.Name, &a.Content, &a.Visibility, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

// ListVisibleTo selects owned and public rows in one query; an artifact that
// is both owned and public matches the predicate once, so no deduplication
// is needed. Content stays out of the result on purpose.
func (r *PostgresRepository) ListVisibleTo(ctx context.Context, requesterID string) ([]*models.Artifact, error) {
	query :=
		`SELECT id, user_id, name, visibility, created_at FROM artifacts
		 WHERE user_id = $1 OR visibility = 'public'
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Artifact
	for rows.Next() {
		var item models.Artifact
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Visibility, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the row by id. A concurrent delete that got there first is
// reported as common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM artifacts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
