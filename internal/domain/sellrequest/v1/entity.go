package sellrequestv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the review state of a sell request.
type Status string

const (
	// StatusSubmitted requests await review.
	StatusSubmitted Status = "submitted"
	// StatusApproved requests produced a listing.
	StatusApproved Status = "approved"
	// StatusRejected requests were declined with a reason.
	StatusRejected Status = "rejected"
)

// SellRequest is a seller's submission that, once approved, becomes a
// fixed-price listing.
type SellRequest struct {
	ID        string  `json:"id"`
	PartID    string  `json:"partID"`
	SellerID  string  `json:"sellerID"`
	Price     float64 `json:"price"`
	Condition string  `json:"condition"`
	Status    Status  `json:"status"`

	ListingID    *string    `json:"listingID,omitempty"`
	RejectReason *string    `json:"rejectReason,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewSellRequest creates a submission awaiting review.
func NewSellRequest(partID, sellerID string, price float64, condition string) *SellRequest {
	now := time.Now().UTC()
	return &SellRequest{
		ID:        ulid.Make().String(),
		PartID:    partID,
		SellerID:  sellerID,
		Price:     price,
		Condition: condition,
		Status:    StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
