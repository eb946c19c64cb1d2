package offerv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Side represents which side of the book an offer sits on.
type Side string

const (
	// SideAsk is a standing offer to sell at a given price.
	SideAsk Side = "ask"
	// SideBid is a standing offer to buy at a given price.
	SideBid Side = "bid"
)

// Opposite returns the opposing book side.
func (s Side) Opposite() Side {
	if s == SideAsk {
		return SideBid
	}
	return SideAsk
}

// Status represents the lifecycle state of an offer. An offer leaves
// `active` exactly once and is never reactivated.
type Status string

const (
	// StatusPending is a bid that has not passed validation yet. Pending
	// offers are invisible to matching.
	StatusPending Status = "pending"
	// StatusActive is an offer resting in the book.
	StatusActive Status = "active"
	// StatusFilled is an offer consumed by exactly one trade.
	StatusFilled Status = "filled"
	// StatusCancelled is an offer withdrawn by the system, e.g. when its
	// product is deactivated.
	StatusCancelled Status = "cancelled"
	// StatusRejected is an offer refused before entering the book.
	StatusRejected Status = "rejected"
)

// Offer represents a single ask or bid for a product.
type Offer struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productID"`
	OwnerID   string    `json:"ownerID"`
	Side      Side      `json:"side"`
	Price     float64   `json:"price"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAsk creates an ask resting in the book immediately.
func NewAsk(productID, ownerID string, price float64) *Offer {
	now := time.Now().UTC()
	return &Offer{
		ID:        ulid.Make().String(),
		ProductID: productID,
		OwnerID:   ownerID,
		Side:      SideAsk,
		Price:     price,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewBid creates a bid that must pass validation before it becomes active.
func NewBid(productID, ownerID string, price float64) *Offer {
	now := time.Now().UTC()
	return &Offer{
		ID:        ulid.Make().String(),
		ProductID: productID,
		OwnerID:   ownerID,
		Side:      SideBid,
		Price:     price,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive reports whether the offer is resting in the book.
func (o *Offer) IsActive() bool {
	return o.Status == StatusActive
}

// Crosses reports whether a new offer at the receiver's price trades
// against the given resting counter offer.
func (o *Offer) Crosses(counter *Offer) bool {
	if counter == nil || o.Side == counter.Side {
		return false
	}
	if o.Side == SideAsk {
		return o.Price <= counter.Price
	}
	return o.Price >= counter.Price
}
