package offer

import (
	"context"
	"math"
	"time"

	offerpublisherv1 "github.com/chanspick/PiCom/internal/domain/offer-publisher/v1"
	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
)

// Usecase accepts new asks and bids from the API and hands them to the
// engine through the offer events topic.
type Usecase struct {
	offerRepository   offerv1.Repository
	productRepository productv1.Repository
	offerPublisher    offerpublisherv1.OfferPublisher
	logger            logger.Interface
}

// NewUsecase creates a new offer usecase.
func NewUsecase(
	offerRepository offerv1.Repository,
	productRepository productv1.Repository,
	offerPublisher offerpublisherv1.OfferPublisher,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		offerRepository:   offerRepository,
		productRepository: productRepository,
		offerPublisher:    offerPublisher,
		logger:            logger,
	}
}

// SubmitAsk stores an ask. Asks rest in the book immediately.
func (u *Usecase) SubmitAsk(ctx context.Context, productID, ownerID string, price float64) (*offerv1.Offer, error) {
	if err := u.validate(ctx, productID, ownerID, price); err != nil {
		return nil, err
	}

	ask := offerv1.NewAsk(productID, ownerID, price)
	if err := u.offerRepository.Store(ctx, ask); err != nil {
		return nil, err
	}

	u.emit(ctx, ask)
	return ask, nil
}

// SubmitBid stores a bid in the pending state. The engine's validator
// decides whether it enters the book.
func (u *Usecase) SubmitBid(ctx context.Context, productID, ownerID string, price float64) (*offerv1.Offer, error) {
	if err := u.validate(ctx, productID, ownerID, price); err != nil {
		return nil, err
	}

	bid := offerv1.NewBid(productID, ownerID, price)
	if err := u.offerRepository.Store(ctx, bid); err != nil {
		return nil, err
	}

	u.emit(ctx, bid)
	return bid, nil
}

// GetByID returns the offer, or a not-found error.
func (u *Usecase) GetByID(ctx context.Context, offerID string) (*offerv1.Offer, error) {
	offer, err := u.offerRepository.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, errors.NewErrorDetails(
			"offer not found",
			string(errors.GeneralNotFoundError),
			"offerID",
		)
	}
	return offer, nil
}

func (u *Usecase) validate(ctx context.Context, productID, ownerID string, price float64) error {
	if ownerID == "" {
		return errors.NewErrorDetails(
			"missing owner",
			string(errors.GeneralUnauthenticatedError),
			"ownerID",
		)
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.NewErrorDetails(
			"price must be a positive number",
			string(errors.ErrOfferValidation),
			"price",
		)
	}

	product, err := u.productRepository.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return errors.NewErrorDetails(
			"product not found",
			string(errors.GeneralNotFoundError),
			"productID",
		)
	}
	if !product.IsActive() {
		return errors.NewErrorDetails(
			"product is not accepting offers",
			string(errors.ErrOfferValidation),
			"productID",
		)
	}
	return nil
}

// emit hands the stored offer to the engine. Publish failures are
// logged, not returned: the offer row exists and a replay of the topic
// or a fresh event for the product will pick it up.
func (u *Usecase) emit(ctx context.Context, offer *offerv1.Offer) {
	if u.offerPublisher == nil {
		return
	}

	event := &offerreaderv1.OfferEvent{
		Type:      offerreaderv1.EventOfferPlaced,
		OfferID:   offer.ID,
		ProductID: offer.ProductID,
		EmittedAt: time.Now().UTC(),
	}
	if err := u.offerPublisher.PublishOfferEvent(ctx, event); err != nil {
		u.logger.WarnContext(ctx, "Failed to publish offer event",
			logger.Field{Key: "offerID", Value: offer.ID},
		)
	}
}
