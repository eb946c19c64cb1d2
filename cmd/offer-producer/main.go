// offer-producer is a load tool: it stores randomized asks and bids for
// one product and emits the matching offer events, the same way the API
// does, so the engine can be exercised without HTTP traffic.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	offerrepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/offer"
	"github.com/chanspick/PiCom/pkg/config"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/postgresql"
	"github.com/segmentio/kafka-go"
)

func generateRandomID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	var result strings.Builder
	for i := 0; i < length; i++ {
		result.WriteByte(charset[rand.Intn(len(charset))])
	}
	return result.String()
}

func main() {
	var (
		productID   = flag.String("product", "", "Product to trade (required)")
		count       = flag.Int("count", 1000, "Number of offers to generate")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between offers")
		basePrice   = flag.Float64("base-price", 500.0, "Base price for offers")
		priceSpread = flag.Float64("price-spread", 50.0, "Price spread range")
	)
	flag.Parse()

	if *productID == "" {
		log.Fatal("missing -product")
	}

	// the producer needs the store and the event topic, nothing else
	cfg := &struct {
		Postgres postgresql.Config  `envPrefix:"PG_"`
		Kafka    config.KafkaConfig `envPrefix:"KAFKA_"`
	}{}
	if err := config.Load(cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.NewLogger(logger.WithLoggingLevel(logger.WarnLevel))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx := context.Background()

	pg, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgresql: %v", err)
	}
	defer pg.Close()

	offers := offerrepo.NewRepository(pg, zlog)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.OfferTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	log.Printf("Sending %d offers for product %s", *count, *productID)

	asks, bids := 0, 0
	for i := 0; i < *count; i++ {
		ownerID := "load-" + generateRandomID(6)
		isBid := rand.Float64() < 0.5

		var price float64
		if isBid {
			price = *basePrice - rand.Float64()*(*priceSpread)*0.8
		} else {
			price = *basePrice + rand.Float64()*(*priceSpread)*0.8
		}
		price = float64(int(price*100)) / 100
		if price <= 0 {
			price = *basePrice
		}

		var offer *offerv1.Offer
		if isBid {
			offer = offerv1.NewBid(*productID, ownerID, price)
			bids++
		} else {
			offer = offerv1.NewAsk(*productID, ownerID, price)
			asks++
		}

		if err := offers.Store(ctx, offer); err != nil {
			log.Printf("Failed to store offer %d: %v", i+1, err)
			continue
		}

		event := &offerreaderv1.OfferEvent{
			Type:      offerreaderv1.EventOfferPlaced,
			OfferID:   offer.ID,
			ProductID: offer.ProductID,
			EmittedAt: time.Now().UTC(),
		}
		msg := kafka.Message{
			Key:   []byte(offer.ProductID),
			Value: offerreaderv1.ToBytes(event),
			Time:  time.Now(),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send event %d (%s): %v", i+1, offer.ID, err)
			continue
		}

		if (i+1)%100 == 0 || i == *count-1 {
			log.Printf("Sent offer %d/%d: %s | %s | %.2f", i+1, *count, offer.ID, offer.Side, offer.Price)
		}

		if i < *count-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("--- Summary ---")
	log.Printf("Total Offers: %d", asks+bids)
	log.Printf("Asks: %d", asks)
	log.Printf("Bids: %d", bids)
}
