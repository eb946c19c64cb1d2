package offerreader

import (
	"context"

	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	"github.com/chanspick/PiCom/pkg/config"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader represents a Kafka reader for consuming offer events.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

// NewReader creates a new Kafka reader for the offer events topic. It
// joins a consumer group so the engine can run more than one instance,
// and commits offsets only after the engine has processed a message.
func NewReader(cfg config.KafkaConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.OfferTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage fetches the next message and parses it as an offer event.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *offerreaderv1.OfferEvent, error) {
	msg, err := r.kafkaReader.FetchMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	// a nil event with a nil error marks an undecodable message: the
	// caller commits it and moves on, there is nothing to redeliver
	event := offerreaderv1.FromBytes(msg.Value)
	if event == nil {
		r.logError(errors.NewTracer("failed to unmarshal offer event"), "UnmarshalOfferEvent")
		return msg, nil, nil
	}

	r.logger.Info("ReadMessage",
		logger.Field{
			Key:   "type",
			Value: event.Type,
		},
		logger.Field{
			Key:   "offerID",
			Value: event.OfferID,
		},
		logger.Field{
			Key:   "productID",
			Value: event.ProductID,
		},
	)

	return msg, event, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return err
	}
	return nil
}
