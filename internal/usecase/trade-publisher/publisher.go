package tradepublisher

import (
	"context"

	tradepublisherv1 "github.com/chanspick/PiCom/internal/domain/trade-publisher/v1"
	"github.com/chanspick/PiCom/pkg/config"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher represents a Kafka publisher for trade events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for the trades topic.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	// hash balancer so the message key actually picks the partition
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.TradeTopic,
		Balancer: &kafka.Hash{},
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTradeEvent publishes a trade event to the Kafka topic, keyed by
// product so downstream consumers see one product's trades in order.
func (p *Publisher) PublishTradeEvent(ctx context.Context, payload *tradepublisherv1.TradeEventPayload) error {
	msg := kafka.Message{
		Key:   []byte(payload.ProductID),
		Value: tradepublisherv1.ToBytes(payload),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "tradeID", Value: payload.TradeID},
		)
		return errors.NewTracer("failed to publish trade event")
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
