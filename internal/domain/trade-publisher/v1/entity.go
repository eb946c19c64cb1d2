package tradepublisherv1

import (
	"encoding/json"
	"time"

	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
)

// TradeEventPayload is the payload published for every executed trade.
type TradeEventPayload struct {
	TradeID   string    `json:"tradeID"`
	ProductID string    `json:"productID"`
	BuyerID   string    `json:"buyerID"`
	SellerID  string    `json:"sellerID"`
	Price     float64   `json:"price"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateFromTrade creates a trade event from an executed trade.
func CreateFromTrade(trade *tradev1.Trade) *TradeEventPayload {
	return &TradeEventPayload{
		TradeID:   trade.ID,
		ProductID: trade.ProductID,
		BuyerID:   trade.BuyerID,
		SellerID:  trade.SellerID,
		Price:     trade.Price,
		Source:    string(trade.Source),
		Timestamp: trade.CreatedAt,
	}
}

// ToBytes converts the trade event to a byte array.
func ToBytes(event *TradeEventPayload) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array to a trade event.
func FromBytes(data []byte) *TradeEventPayload {
	var event TradeEventPayload
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
