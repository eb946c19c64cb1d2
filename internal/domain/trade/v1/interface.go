package tradev1

import "context"

// Repository persists executed trades.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradev1_mock
type Repository interface {
	// Store inserts a new trade.
	Store(ctx context.Context, trade *Trade) error

	// GetByID returns the trade or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Trade, error)

	// ListByProduct returns the most recent trades for a product,
	// newest first.
	ListByProduct(ctx context.Context, productID string, limit int) ([]*Trade, error)

	// BuyerStats aggregates the buyer's trades. A buyer with no trades
	// gets zeroed stats, not nil.
	BuyerStats(ctx context.Context, buyerID string) (*BuyerStats, error)
}
