package productv1

import (
	"context"
	"time"
)

// Repository persists products and their quote projection.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=productv1_mock
type Repository interface {
	// Store inserts a new product.
	Store(ctx context.Context, product *Product) error

	// GetByID returns the product or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Product, error)

	// GetQuote returns the current quote or nil for an unknown product.
	GetQuote(ctx context.Context, id string) (*Quote, error)

	// RefreshQuote recomputes lowest_ask and highest_bid from the active
	// offers in a single statement and returns the result. Safe to call
	// any number of times.
	RefreshQuote(ctx context.Context, id string) (*Quote, error)

	// RecordTrade sets last_traded_price and appends a price history row.
	RecordTrade(ctx context.Context, id string, price float64, tradedAt time.Time) error

	// UpdateStatus changes the product's listing state.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// PriceHistory returns the most recent price points, newest first.
	PriceHistory(ctx context.Context, id string, limit int) ([]PricePoint, error)
}
