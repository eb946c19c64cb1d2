package partv1

import "context"

// Repository persists the parts catalog.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=partv1_mock
type Repository interface {
	// Store inserts a new part.
	Store(ctx context.Context, part *Part) error

	// GetByID returns the part or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Part, error)

	// List returns parts, optionally filtered by category, newest first.
	List(ctx context.Context, category Category, limit int) ([]*Part, error)

	// Update rewrites the mutable fields of a part. Returns false when
	// the part does not exist.
	Update(ctx context.Context, part *Part) (bool, error)
}
