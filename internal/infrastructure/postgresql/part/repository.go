package part

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	partv1 "github.com/chanspick/PiCom/internal/domain/part/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/postgresql"
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Store stores a part.
func (r *repository) Store(ctx context.Context, part *partv1.Part) error {
	query := `INSERT INTO parts (id, name, category, brand, model, specs, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	cmd, err := r.db.Exec(ctx, query,
		part.ID,
		part.Name,
		part.Category,
		part.Brand,
		part.Model,
		part.Specs,
		part.CreatedAt,
		part.UpdatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted part", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID returns the part or nil when it does not exist.
func (r *repository) GetByID(ctx context.Context, id string) (*partv1.Part, error) {
	query := `SELECT id, name, category, brand, model, specs, created_at, updated_at FROM parts WHERE id = $1`

	var part partv1.Part
	err := r.db.QueryRow(ctx, query, id).Scan(
		&part.ID,
		&part.Name,
		&part.Category,
		&part.Brand,
		&part.Model,
		&part.Specs,
		&part.CreatedAt,
		&part.UpdatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &part, nil
}

// List returns parts, optionally filtered by category, newest first.
func (r *repository) List(ctx context.Context, category partv1.Category, limit int) ([]*partv1.Part, error) {
	query := `SELECT id, name, category, brand, model, specs, created_at, updated_at FROM parts WHERE ($1 = '' OR category = $1) ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, string(category), limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var parts []*partv1.Part
	for rows.Next() {
		var part partv1.Part
		if err := rows.Scan(
			&part.ID,
			&part.Name,
			&part.Category,
			&part.Brand,
			&part.Model,
			&part.Specs,
			&part.CreatedAt,
			&part.UpdatedAt,
		); err != nil {
			return nil, errors.TracerFromError(err)
		}
		parts = append(parts, &part)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return parts, nil
}

// Update rewrites the mutable fields of a part.
func (r *repository) Update(ctx context.Context, part *partv1.Part) (bool, error) {
	query := `UPDATE parts SET name = $1, category = $2, brand = $3, model = $4, specs = $5, updated_at = NOW() WHERE id = $6`

	cmd, err := r.db.Exec(ctx, query,
		part.Name,
		part.Category,
		part.Brand,
		part.Model,
		part.Specs,
		part.ID,
	)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}
