package offerpublisherv1

import (
	"context"

	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
)

// OfferPublisher defines the interface for publishing offer events.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=offerpublisherv1_mock
type OfferPublisher interface {
	// PublishOfferEvent publishes an offer event to the Kafka topic.
	PublishOfferEvent(ctx context.Context, event *offerreaderv1.OfferEvent) error
}
