package validator

import (
	"context"
	"math"

	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
	"github.com/chanspick/PiCom/pkg/logger"
)

// Usecase checks pending bids before they enter the book. A bid that
// fails any check is deleted outright so the book never carries it; a
// bid that passes is activated with a fresh server timestamp, which is
// the timestamp used for time priority.
type Usecase struct {
	offerRepository   offerv1.Repository
	productRepository productv1.Repository
	logger            logger.Interface
}

// NewUsecase creates a new validator usecase.
func NewUsecase(offerRepository offerv1.Repository, productRepository productv1.Repository, logger logger.Interface) *Usecase {
	return &Usecase{
		offerRepository:   offerRepository,
		productRepository: productRepository,
		logger:            logger,
	}
}

// ValidateBid validates one pending bid. It returns the activated offer
// when the bid passed, nil when the bid was deleted or was no longer
// pending. Bids deleted here leave no trace; rejection statuses are
// reserved for offers withdrawn after entering the book.
func (u *Usecase) ValidateBid(ctx context.Context, offerID string) (*offerv1.Offer, error) {
	offer, err := u.offerRepository.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		u.logger.InfoContext(ctx, "Bid vanished before validation", logger.Field{
			Key:   "offerID",
			Value: offerID,
		})
		return nil, nil
	}
	if offer.Side != offerv1.SideBid || offer.Status != offerv1.StatusPending {
		return nil, nil
	}

	reason := u.check(ctx, offer)
	if reason != "" {
		u.logger.InfoContext(ctx, "Deleting invalid bid",
			logger.Field{Key: "offerID", Value: offer.ID},
			logger.Field{Key: "reason", Value: reason},
		)
		if err := u.offerRepository.Delete(ctx, offer.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	activated, err := u.offerRepository.Activate(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if !activated {
		// someone else already moved the bid out of pending
		return nil, nil
	}

	activatedOffer, err := u.offerRepository.GetByID(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	return activatedOffer, nil
}

// check returns a non-empty reason when the bid must be deleted. A
// failed product lookup counts as invalid: the book must never carry a
// bid whose product could not be confirmed.
func (u *Usecase) check(ctx context.Context, offer *offerv1.Offer) string {
	if offer.OwnerID == "" {
		return "missing owner"
	}
	if offer.Price <= 0 || math.IsNaN(offer.Price) || math.IsInf(offer.Price, 0) {
		return "invalid price"
	}

	product, err := u.productRepository.GetByID(ctx, offer.ProductID)
	if err != nil {
		u.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "offerID",
			Value: offer.ID,
		})
		return "product lookup failed"
	}
	if product == nil {
		return "unknown product"
	}
	if !product.IsActive() {
		return "inactive product"
	}

	return ""
}
