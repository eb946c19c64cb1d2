package listingv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the lifecycle state of a fixed-price listing.
type Status string

const (
	// StatusActive listings can be bought.
	StatusActive Status = "active"
	// StatusSold listings have been taken by a buyer.
	StatusSold Status = "sold"
	// StatusCancelled listings were withdrawn by the seller.
	StatusCancelled Status = "cancelled"
)

// Listing is a fixed-price sale of one item, outside the auction book.
// Part fields are denormalized from the parts catalog so listing reads
// need no join.
type Listing struct {
	ID       string  `json:"id"`
	PartID   string  `json:"partID"`
	SellerID string  `json:"sellerID"`
	Price    float64 `json:"price"`
	Status   Status  `json:"status"`

	PartName     string `json:"partName"`
	PartCategory string `json:"partCategory"`
	PartBrand    string `json:"partBrand"`

	BuyerID   *string    `json:"buyerID,omitempty"`
	SoldAt    *time.Time `json:"soldAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewListing creates an active listing with part fields copied in.
func NewListing(partID, sellerID string, price float64, partName, partCategory, partBrand string) *Listing {
	now := time.Now().UTC()
	return &Listing{
		ID:           ulid.Make().String(),
		PartID:       partID,
		SellerID:     sellerID,
		Price:        price,
		Status:       StatusActive,
		PartName:     partName,
		PartCategory: partCategory,
		PartBrand:    partBrand,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive reports whether the listing can still be bought.
func (l *Listing) IsActive() bool {
	return l.Status == StatusActive
}
