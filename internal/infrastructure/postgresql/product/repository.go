package product

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"

	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
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

// Store stores a product.
func (r *repository) Store(ctx context.Context, product *productv1.Product) error {
	query := `INSERT INTO products (id, name, status, lowest_ask, highest_bid, last_traded_price, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	cmd, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Status,
		product.LowestAsk,
		product.HighestBid,
		product.LastTradedPrice,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Inserted product", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// GetByID returns the product or nil when it does not exist.
func (r *repository) GetByID(ctx context.Context, id string) (*productv1.Product, error) {
	query := `SELECT id, name, status, lowest_ask, highest_bid, last_traded_price, created_at, updated_at FROM products WHERE id = $1`

	var product productv1.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Status,
		&product.LowestAsk,
		&product.HighestBid,
		&product.LastTradedPrice,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &product, nil
}

// GetQuote returns the current quote or nil for an unknown product.
func (r *repository) GetQuote(ctx context.Context, id string) (*productv1.Quote, error) {
	query := `SELECT id, lowest_ask, highest_bid, last_traded_price, updated_at FROM products WHERE id = $1`

	var quote productv1.Quote
	err := r.db.QueryRow(ctx, query, id).Scan(
		&quote.ProductID,
		&quote.LowestAsk,
		&quote.HighestBid,
		&quote.LastTradedPrice,
		&quote.UpdatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &quote, nil
}

// RefreshQuote recomputes the best prices from the active offers in one
// statement. Running it twice in a row leaves the row unchanged.
func (r *repository) RefreshQuote(ctx context.Context, id string) (*productv1.Quote, error) {
	query := `UPDATE products SET
		lowest_ask = (SELECT MIN(price) FROM offers WHERE product_id = $1 AND side = 'ask' AND status = 'active'),
		highest_bid = (SELECT MAX(price) FROM offers WHERE product_id = $1 AND side = 'bid' AND status = 'active'),
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, lowest_ask, highest_bid, last_traded_price, updated_at`

	var quote productv1.Quote
	err := r.db.QueryRow(ctx, query, id).Scan(
		&quote.ProductID,
		&quote.LowestAsk,
		&quote.HighestBid,
		&quote.LastTradedPrice,
		&quote.UpdatedAt,
	)
	if err != nil {
		if pkgerrors.Is(err, postgresql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.TracerFromError(err)
	}

	return &quote, nil
}

// RecordTrade sets last_traded_price and appends a price history row.
func (r *repository) RecordTrade(ctx context.Context, id string, price float64, tradedAt time.Time) error {
	query := `UPDATE products SET last_traded_price = $1, updated_at = NOW() WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, price, id); err != nil {
		return errors.TracerFromError(err)
	}

	historyQuery := `INSERT INTO price_history (product_id, price, traded_at) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, historyQuery, id, price, tradedAt); err != nil {
		return errors.TracerFromError(err)
	}

	return nil
}

// UpdateStatus changes the product's listing state.
func (r *repository) UpdateStatus(ctx context.Context, id string, status productv1.Status) error {
	query := `UPDATE products SET status = $1, updated_at = NOW() WHERE id = $2`

	cmd, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return errors.TracerFromError(err)
	}

	r.logger.Info("Updated product status", logger.Field{
		Key:   "productID",
		Value: id,
	}, logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// PriceHistory returns the most recent price points, newest first.
func (r *repository) PriceHistory(ctx context.Context, id string, limit int) ([]productv1.PricePoint, error) {
	query := `SELECT product_id, price, traded_at FROM price_history WHERE product_id = $1 ORDER BY traded_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, id, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	var points []productv1.PricePoint
	for rows.Next() {
		var point productv1.PricePoint
		if err := rows.Scan(&point.ProductID, &point.Price, &point.TradedAt); err != nil {
			return nil, errors.TracerFromError(err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return points, nil
}
