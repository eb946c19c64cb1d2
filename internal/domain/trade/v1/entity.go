package tradev1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Source tells how a trade came to be.
type Source string

const (
	// SourceAuction trades come out of the matching engine.
	SourceAuction Source = "auction"
	// SourceListing trades come from a buyer taking a fixed-price listing.
	SourceListing Source = "listing"
)

// Trade is an executed exchange between a buyer and a seller.
// ProductID is the catalog item the trade concerns: a product for
// auction trades, a part for listing trades.
type Trade struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productID"`
	BuyerID   string    `json:"buyerID"`
	SellerID  string    `json:"sellerID"`
	Price     float64   `json:"price"`
	Source    Source    `json:"source"`
	AskID     *string   `json:"askID,omitempty"`
	BidID     *string   `json:"bidID,omitempty"`
	ListingID *string   `json:"listingID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BuyerStats aggregates a buyer's completed purchases: won auctions,
// fixed-price buys and the total spent across both.
type BuyerStats struct {
	BuyerID    string  `json:"buyerID"`
	WonBids    int64   `json:"wonBids"`
	Purchases  int64   `json:"purchases"`
	TotalSpent float64 `json:"totalSpent"`
}

// NewAuctionTrade builds a trade settling a matched ask/bid pair at the
// resting offer's price.
func NewAuctionTrade(productID, buyerID, sellerID string, price float64, askID, bidID string) *Trade {
	return &Trade{
		ID:        ulid.Make().String(),
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Price:     price,
		Source:    SourceAuction,
		AskID:     &askID,
		BidID:     &bidID,
		CreatedAt: time.Now().UTC(),
	}
}

// NewListingTrade builds a trade for a fixed-price listing purchase.
func NewListingTrade(productID, buyerID, sellerID string, price float64, listingID string) *Trade {
	return &Trade{
		ID:        ulid.Make().String(),
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Price:     price,
		Source:    SourceListing,
		ListingID: &listingID,
		CreatedAt: time.Now().UTC(),
	}
}
