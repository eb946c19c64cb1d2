package trade

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
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

// Store stores a trade.
func (r *repository) Store(ctx context.Context, trade *tradev1.Trade) error {
	query := `INSERT INTO trades (id, product_id, buyer_id, seller_id, price, source, ask_id, bid_id, listing_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	cmd, err := r.db.Exec(ctx, query,
		trade.ID,
		trade.ProductID,
		trade.BuyerID,
		trade.SellerID,
		trade.Price,
		trade.Source,
		trade.AskID,
		trade.BidID,
		trade.ListingID,
		trade.CreatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted trade", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID returns the trade or nil when it does not exist.
func (r *repository) GetByID(ctx context.Context, id string) (*tradev1.Trade, error) {
	query := `SELECT id, product_id, buyer_id, seller_id, price, source, ask_id, bid_id, listing_id, created_at FROM trades WHERE id = $1`

	var trade tradev1.Trade
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trade.ID,
		&trade.ProductID,
		&trade.BuyerID,
		&trade.SellerID,
		&trade.Price,
		&trade.Source,
		&trade.AskID,
		&trade.BidID,
		&trade.ListingID,
		&trade.CreatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &trade, nil
}

// BuyerStats aggregates the buyer's trades by source.
func (r *repository) BuyerStats(ctx context.Context, buyerID string) (*tradev1.BuyerStats, error) {
	query := `SELECT COUNT(*) FILTER (WHERE source = $2), COUNT(*) FILTER (WHERE source = $3), COALESCE(SUM(price), 0) FROM trades WHERE buyer_id = $1`

	stats := tradev1.BuyerStats{BuyerID: buyerID}
	err := r.db.QueryRow(ctx, query, buyerID, tradev1.SourceAuction, tradev1.SourceListing).Scan(
		&stats.WonBids,
		&stats.Purchases,
		&stats.TotalSpent,
	)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return &stats, nil
}

// ListByProduct returns the most recent trades for a product, newest first.
func (r *repository) ListByProduct(ctx context.Context, productID string, limit int) ([]*tradev1.Trade, error) {
	query := `SELECT id, product_id, buyer_id, seller_id, price, source, ask_id, bid_id, listing_id, created_at FROM trades WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var trades []*tradev1.Trade
	for rows.Next() {
		var trade tradev1.Trade
		if err := rows.Scan(
			&trade.ID,
			&trade.ProductID,
			&trade.BuyerID,
			&trade.SellerID,
			&trade.Price,
			&trade.Source,
			&trade.AskID,
			&trade.BidID,
			&trade.ListingID,
			&trade.CreatedAt,
		); err != nil {
			return nil, errors.TracerFromError(err)
		}
		trades = append(trades, &trade)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return trades, nil
}
