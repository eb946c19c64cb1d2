package offerpublisher

import (
	"context"

	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	"github.com/chanspick/PiCom/pkg/config"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher represents a Kafka publisher for offer events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for the offer events topic.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	// hash balancer so the message key actually picks the partition
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.OfferTopic,
		Balancer: &kafka.Hash{},
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishOfferEvent publishes an offer event keyed by product, so every
// event for one product lands on the same partition and is consumed in
// order.
func (p *Publisher) PublishOfferEvent(ctx context.Context, event *offerreaderv1.OfferEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: offerreaderv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "offerID", Value: event.OfferID},
		)
		return errors.NewTracer("failed to publish offer event")
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
