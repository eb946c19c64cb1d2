package offer

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"

	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
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

// Store stores an offer.
func (r *repository) Store(ctx context.Context, offer *offerv1.Offer) error {
	query := `INSERT INTO offers (id, product_id, owner_id, side, price, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	cmd, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.ProductID,
		offer.OwnerID,
		offer.Side,
		offer.Price,
		offer.Status,
		offer.CreatedAt,
		offer.UpdatedAt,
	)
	if err != nil {
		r.logger.Error(err, logger.Field{
			Key:   "error",
			Value: err.Error(),
		})
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted offer", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID returns the offer or nil when it does not exist.
func (r *repository) GetByID(ctx context.Context, id string) (*offerv1.Offer, error) {
	query := `SELECT id, product_id, owner_id, side, price, status, created_at, updated_at FROM offers WHERE id = $1`

	var offer offerv1.Offer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offer.ID,
		&offer.ProductID,
		&offer.OwnerID,
		&offer.Side,
		&offer.Price,
		&offer.Status,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &offer, nil
}

// Delete removes the offer row entirely.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM offers WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Deleted offer", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// Activate flips a pending offer to active with a fresh server timestamp.
func (r *repository) Activate(ctx context.Context, id string) (bool, error) {
	query := `UPDATE offers SET status = $1, created_at = NOW(), updated_at = NOW() WHERE id = $2 AND status = $3`

	cmd, err := r.db.Exec(ctx, query, offerv1.StatusActive, id, offerv1.StatusPending)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}

// Fill flips an active offer to filled. The status guard in the WHERE
// clause is what aborts a settlement built on a stale read.
func (r *repository) Fill(ctx context.Context, id string) (bool, error) {
	query := `UPDATE offers SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	cmd, err := r.db.Exec(ctx, query, offerv1.StatusFilled, id, offerv1.StatusActive)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}

// BestActive returns the best resting offer on one side of a product's
// book. Bids order by price descending, asks ascending, with creation
// time then id breaking ties so the earliest offer wins.
func (r *repository) BestActive(ctx context.Context, productID string, side offerv1.Side) (*offerv1.Offer, error) {
	query := `SELECT id, product_id, owner_id, side, price, status, created_at, updated_at FROM offers WHERE product_id = $1 AND side = $2 AND status = $3 ORDER BY price ASC, created_at ASC, id ASC LIMIT 1`
	if side == offerv1.SideBid {
		query = `SELECT id, product_id, owner_id, side, price, status, created_at, updated_at FROM offers WHERE product_id = $1 AND side = $2 AND status = $3 ORDER BY price DESC, created_at ASC, id ASC LIMIT 1`
	}

	var offer offerv1.Offer
	err := r.db.QueryRow(ctx, query, productID, side, offerv1.StatusActive).Scan(
		&offer.ID,
		&offer.ProductID,
		&offer.OwnerID,
		&offer.Side,
		&offer.Price,
		&offer.Status,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &offer, nil
}

// CancelActiveByProduct cancels every active offer for the product.
func (r *repository) CancelActiveByProduct(ctx context.Context, productID string) (int64, error) {
	query := `UPDATE offers SET status = $1, updated_at = NOW() WHERE product_id = $2 AND status = $3`

	cmd, err := r.db.Exec(ctx, query, offerv1.StatusCancelled, productID, offerv1.StatusActive)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	r.logger.Info("Cancelled active offers", logger.Field{
		Key:   "productID",
		Value: productID,
	}, logger.Field{
		Key:   "count",
		Value: cmd.RowsAffected(),
	})

	return cmd.RowsAffected(), nil
}

// DeleteTerminalBefore removes up to limit terminal offers last touched
// before the cutoff.
func (r *repository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `DELETE FROM offers WHERE id IN (SELECT id FROM offers WHERE status IN ($1, $2, $3) AND updated_at < $4 ORDER BY updated_at ASC LIMIT $5)`

	cmd, err := r.db.Exec(ctx, query,
		offerv1.StatusFilled,
		offerv1.StatusCancelled,
		offerv1.StatusRejected,
		cutoff,
		limit,
	)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	return cmd.RowsAffected(), nil
}

func isNoRows(err error) bool {
	return pkgerrors.Is(err, postgresql.ErrNoRows)
}
