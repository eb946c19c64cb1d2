package offerreaderv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// OfferReader defines the interface for reading offer events from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=offerreaderv1_mock
type OfferReader interface {
	// ReadMessage reads a message and returns it alongside the parsed event
	ReadMessage(ctx context.Context) (kafka.Message, *OfferEvent, error)
	// Close closes the reader
	Close() error

	// CommitMessages commits the messages to Kafka after processing
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}
