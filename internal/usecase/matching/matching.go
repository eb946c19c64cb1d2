package matching

import (
	"context"

	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	"github.com/chanspick/PiCom/pkg/logger"
)

// Match pairs an incoming offer with the best resting counter offer.
type Match struct {
	Ask *offerv1.Offer
	Bid *offerv1.Offer
	// Price is the resting offer's price. The incoming offer crossed the
	// book, so the offer that was already waiting sets the terms.
	Price float64
}

// Usecase finds the counter offer an incoming offer should trade with.
// One incoming offer gets exactly one match attempt; if settlement later
// aborts, the offer simply rests in the book until a future event
// crosses it again.
type Usecase struct {
	offerRepository offerv1.Repository
	logger          logger.Interface
}

// NewUsecase creates a new matching usecase.
func NewUsecase(offerRepository offerv1.Repository, logger logger.Interface) *Usecase {
	return &Usecase{
		offerRepository: offerRepository,
		logger:          logger,
	}
}

// FindMatch returns the match for the given offer, or nil when the book
// has no crossing counter offer. The best counter offer is the highest
// bid for an incoming ask and the lowest ask for an incoming bid, with
// the earliest offer winning price ties.
func (u *Usecase) FindMatch(ctx context.Context, offer *offerv1.Offer) (*Match, error) {
	if offer == nil || !offer.IsActive() {
		return nil, nil
	}

	counter, err := u.offerRepository.BestActive(ctx, offer.ProductID, offer.Side.Opposite())
	if err != nil {
		return nil, err
	}
	if counter == nil || !offer.Crosses(counter) {
		return nil, nil
	}

	u.logger.InfoContext(ctx, "Found match",
		logger.Field{Key: "offerID", Value: offer.ID},
		logger.Field{Key: "counterID", Value: counter.ID},
		logger.Field{Key: "price", Value: counter.Price},
	)

	match := &Match{Price: counter.Price}
	if offer.Side == offerv1.SideAsk {
		match.Ask = offer
		match.Bid = counter
	} else {
		match.Ask = counter
		match.Bid = offer
	}
	return match, nil
}
