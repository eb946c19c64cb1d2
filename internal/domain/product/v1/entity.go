package productv1

import "time"

// Status is the listing state of a product in the catalog.
type Status string

const (
	// StatusActive products accept new offers.
	StatusActive Status = "active"
	// StatusInactive products accept no offers and have their book cleared.
	StatusInactive Status = "inactive"
)

// Product is a catalog entry carrying the live quote projection.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          Status    `json:"status"`
	LowestAsk       *float64  `json:"lowestAsk"`
	HighestBid      *float64  `json:"highestBid"`
	LastTradedPrice *float64  `json:"lastTradedPrice"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Quote is the market summary for one product.
type Quote struct {
	ProductID       string    `json:"productID"`
	LowestAsk       *float64  `json:"lowestAsk"`
	HighestBid      *float64  `json:"highestBid"`
	LastTradedPrice *float64  `json:"lastTradedPrice"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PricePoint is one entry of a product's trade price history.
type PricePoint struct {
	ProductID string    `json:"productID"`
	Price     float64   `json:"price"`
	TradedAt  time.Time `json:"tradedAt"`
}

// IsActive reports whether the product accepts offers.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}
