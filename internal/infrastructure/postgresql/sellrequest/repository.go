package sellrequest

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	sellrequestv1 "github.com/chanspick/PiCom/internal/domain/sellrequest/v1"
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

// Store stores a sell request.
func (r *repository) Store(ctx context.Context, request *sellrequestv1.SellRequest) error {
	query := `INSERT INTO sell_requests (id, part_id, seller_id, price, condition, status, listing_id, reject_reason, reviewed_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	cmd, err := r.db.Exec(ctx, query,
		request.ID,
		request.PartID,
		request.SellerID,
		request.Price,
		request.Condition,
		request.Status,
		request.ListingID,
		request.RejectReason,
		request.ReviewedAt,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted sell request", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID returns the request or nil when it does not exist.
func (r *repository) GetByID(ctx context.Context, id string) (*sellrequestv1.SellRequest, error) {
	query := `SELECT id, part_id, seller_id, price, condition, status, listing_id, reject_reason, reviewed_at, created_at, updated_at FROM sell_requests WHERE id = $1`

	var request sellrequestv1.SellRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.PartID,
		&request.SellerID,
		&request.Price,
		&request.Condition,
		&request.Status,
		&request.ListingID,
		&request.RejectReason,
		&request.ReviewedAt,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &request, nil
}

// ListByStatus returns requests in the given state, oldest first.
func (r *repository) ListByStatus(ctx context.Context, status sellrequestv1.Status, limit int) ([]*sellrequestv1.SellRequest, error) {
	query := `SELECT id, part_id, seller_id, price, condition, status, listing_id, reject_reason, reviewed_at, created_at, updated_at FROM sell_requests WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.db.Query(ctx, query, status, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var requests []*sellrequestv1.SellRequest
	for rows.Next() {
		var request sellrequestv1.SellRequest
		if err := rows.Scan(
			&request.ID,
			&request.PartID,
			&request.SellerID,
			&request.Price,
			&request.Condition,
			&request.Status,
			&request.ListingID,
			&request.RejectReason,
			&request.ReviewedAt,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, errors.TracerFromError(err)
		}
		requests = append(requests, &request)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return requests, nil
}

// Approve flips a submitted request to approved and links the listing.
func (r *repository) Approve(ctx context.Context, id, listingID string) (bool, error) {
	query := `UPDATE sell_requests SET status = $1, listing_id = $2, reviewed_at = NOW(), updated_at = NOW() WHERE id = $3 AND status = $4`

	cmd, err := r.db.Exec(ctx, query, sellrequestv1.StatusApproved, listingID, id, sellrequestv1.StatusSubmitted)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}

// Reject flips a submitted request to rejected with a reason.
func (r *repository) Reject(ctx context.Context, id, reason string) (bool, error) {
	query := `UPDATE sell_requests SET status = $1, reject_reason = $2, reviewed_at = NOW(), updated_at = NOW() WHERE id = $3 AND status = $4`

	cmd, err := r.db.Exec(ctx, query, sellrequestv1.StatusRejected, reason, id, sellrequestv1.StatusSubmitted)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}
