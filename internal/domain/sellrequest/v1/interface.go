package sellrequestv1

import "context"

// Repository persists sell requests.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=sellrequestv1_mock
type Repository interface {
	// Store inserts a new sell request.
	Store(ctx context.Context, request *SellRequest) error

	// GetByID returns the request or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*SellRequest, error)

	// ListByStatus returns requests in the given state, oldest first, so
	// reviewers work the queue in submission order.
	ListByStatus(ctx context.Context, status Status, limit int) ([]*SellRequest, error)

	// Approve flips a submitted request to approved and links the
	// listing created from it. Returns false when the request already
	// left the submitted state.
	Approve(ctx context.Context, id, listingID string) (bool, error)

	// Reject flips a submitted request to rejected with a reason.
	// Returns false when the request already left the submitted state.
	Reject(ctx context.Context, id, reason string) (bool, error)
}
