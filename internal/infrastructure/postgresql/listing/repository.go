package listing

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
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

// Store stores a listing.
func (r *repository) Store(ctx context.Context, listing *listingv1.Listing) error {
	query := `INSERT INTO listings (id, part_id, seller_id, price, status, part_name, part_category, part_brand, buyer_id, sold_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	cmd, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.PartID,
		listing.SellerID,
		listing.Price,
		listing.Status,
		listing.PartName,
		listing.PartCategory,
		listing.PartBrand,
		listing.BuyerID,
		listing.SoldAt,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted listing", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID returns the listing or nil when it does not exist.
func (r *repository) GetByID(ctx context.Context, id string) (*listingv1.Listing, error) {
	query := `SELECT id, part_id, seller_id, price, status, part_name, part_category, part_brand, buyer_id, sold_at, created_at, updated_at FROM listings WHERE id = $1`

	var listing listingv1.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.PartID,
		&listing.SellerID,
		&listing.Price,
		&listing.Status,
		&listing.PartName,
		&listing.PartCategory,
		&listing.PartBrand,
		&listing.BuyerID,
		&listing.SoldAt,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &listing, nil
}

// ListByPart returns listings for a part, newest first.
func (r *repository) ListByPart(ctx context.Context, partID string, status listingv1.Status, limit int) ([]*listingv1.Listing, error) {
	query := `SELECT id, part_id, seller_id, price, status, part_name, part_category, part_brand, buyer_id, sold_at, created_at, updated_at FROM listings WHERE part_id = $1 AND ($2 = '' OR status = $2) ORDER BY created_at DESC LIMIT $3`

	rows, err := r.db.Query(ctx, query, partID, string(status), limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var listings []*listingv1.Listing
	for rows.Next() {
		var listing listingv1.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.PartID,
			&listing.SellerID,
			&listing.Price,
			&listing.Status,
			&listing.PartName,
			&listing.PartCategory,
			&listing.PartBrand,
			&listing.BuyerID,
			&listing.SoldAt,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, errors.TracerFromError(err)
		}
		listings = append(listings, &listing)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return listings, nil
}

// MarkSold flips an active listing to sold and records the buyer. The
// status guard makes the purchase lose cleanly when two buyers race.
func (r *repository) MarkSold(ctx context.Context, id, buyerID string) (bool, error) {
	query := `UPDATE listings SET status = $1, buyer_id = $2, sold_at = NOW(), updated_at = NOW() WHERE id = $3 AND status = $4`

	cmd, err := r.db.Exec(ctx, query, listingv1.StatusSold, buyerID, id, listingv1.StatusActive)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}

// Cancel withdraws an active listing.
func (r *repository) Cancel(ctx context.Context, id string) (bool, error) {
	query := `UPDATE listings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	cmd, err := r.db.Exec(ctx, query, listingv1.StatusCancelled, id, listingv1.StatusActive)
	if err != nil {
		return false, errors.TracerFromError(err)
	}

	return cmd.RowsAffected() == 1, nil
}

// UpdatePartFields rewrites the denormalized part fields on every
// listing of the part.
func (r *repository) UpdatePartFields(ctx context.Context, partID string, fields listingv1.PartFields) (int64, error) {
	query := `UPDATE listings SET part_name = $1, part_category = $2, part_brand = $3, updated_at = NOW() WHERE part_id = $4`

	cmd, err := r.db.Exec(ctx, query, fields.Name, fields.Category, fields.Brand, partID)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	r.logger.Info("Propagated part fields to listings", logger.Field{
		Key:   "partID",
		Value: partID,
	}, logger.Field{
		Key:   "count",
		Value: cmd.RowsAffected(),
	})

	return cmd.RowsAffected(), nil
}
