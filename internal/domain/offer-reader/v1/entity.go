package offerreaderv1

import (
	"encoding/json"
	"time"
)

// EventType tells the engine what happened to an offer.
type EventType string

const (
	// EventOfferPlaced is emitted when a new ask or bid is accepted by
	// the API and stored.
	EventOfferPlaced EventType = "offer_placed"
	// EventProductDeactivated is emitted when a product leaves the
	// catalog and its book must be cleared.
	EventProductDeactivated EventType = "product_deactivated"
)

// OfferEvent is the payload carried on the offer events topic. Events
// are keyed by ProductID so one product is always handled by one
// partition, in order.
type OfferEvent struct {
	Type      EventType `json:"type"`
	OfferID   string    `json:"offerID,omitempty"`
	ProductID string    `json:"productID"`
	EmittedAt time.Time `json:"emittedAt"`
}

// ToBytes converts the event to a byte array.
func ToBytes(event *OfferEvent) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array to an offer event.
func FromBytes(data []byte) *OfferEvent {
	var event OfferEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
