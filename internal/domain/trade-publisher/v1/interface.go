package tradepublisherv1

import "context"

// TradePublisher defines the interface for publishing trade events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradepublisherv1_mock
type TradePublisher interface {
	// PublishTradeEvent publishes a trade event to the Kafka topic.
	PublishTradeEvent(ctx context.Context, payload *TradeEventPayload) error
}
