package listingv1

import "context"

// PartFields is the denormalized slice of a part carried on listings.
type PartFields struct {
	Name     string
	Category string
	Brand    string
}

// Repository persists fixed-price listings.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=listingv1_mock
type Repository interface {
	// Store inserts a new listing.
	Store(ctx context.Context, listing *Listing) error

	// GetByID returns the listing or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Listing, error)

	// ListByPart returns listings for a part, newest first. Status
	// filters when non-empty.
	ListByPart(ctx context.Context, partID string, status Status, limit int) ([]*Listing, error)

	// MarkSold flips an active listing to sold and records the buyer.
	// Returns false when the listing was no longer active.
	MarkSold(ctx context.Context, id, buyerID string) (bool, error)

	// Cancel withdraws an active listing. Returns false when it was no
	// longer active.
	Cancel(ctx context.Context, id string) (bool, error)

	// UpdatePartFields rewrites the denormalized part fields on every
	// listing of the part and returns how many rows changed.
	UpdatePartFields(ctx context.Context, partID string, fields PartFields) (int64, error)
}
