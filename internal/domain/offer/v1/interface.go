package offerv1

import (
	"context"
	"time"
)

// Repository persists offers and exposes the book queries the engine needs.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=offerv1_mock
type Repository interface {
	// Store inserts a new offer.
	Store(ctx context.Context, offer *Offer) error

	// GetByID returns the offer or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Offer, error)

	// Delete removes the offer row entirely. Used for bids that fail
	// validation, which leave no trace in the book.
	Delete(ctx context.Context, id string) error

	// Activate flips a pending offer to active with a fresh server
	// timestamp. Returns false when the offer is no longer pending.
	Activate(ctx context.Context, id string) (bool, error)

	// Fill flips an active offer to filled. Returns false when the offer
	// left the active state in the meantime, in which case the caller
	// must abort its settlement.
	Fill(ctx context.Context, id string) (bool, error)

	// BestActive returns the best resting offer on the given side of the
	// product's book: highest price for bids, lowest for asks, earliest
	// created_at winning ties. Nil when the side is empty.
	BestActive(ctx context.Context, productID string, side Side) (*Offer, error)

	// CancelActiveByProduct cancels every active offer for the product
	// and returns how many were cancelled.
	CancelActiveByProduct(ctx context.Context, productID string) (int64, error)

	// DeleteTerminalBefore removes up to limit filled, cancelled or
	// rejected offers last touched before the cutoff. Returns the number
	// of rows removed.
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
