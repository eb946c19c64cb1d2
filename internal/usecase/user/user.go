package user

import (
	"context"

	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
)

// Usecase serves per-buyer trading stats. The numbers are computed from
// the trades table on demand rather than kept as counters, so they can
// never drift from the rows they summarize.
type Usecase struct {
	tradeRepository tradev1.Repository
	logger          logger.Interface
}

// NewUsecase creates a new user usecase.
func NewUsecase(tradeRepository tradev1.Repository, logger logger.Interface) *Usecase {
	return &Usecase{
		tradeRepository: tradeRepository,
		logger:          logger,
	}
}

// Stats returns the buyer's aggregated purchase stats. A buyer with no
// trades gets zeroed stats.
func (u *Usecase) Stats(ctx context.Context, buyerID string) (*tradev1.BuyerStats, error) {
	if buyerID == "" {
		return nil, errors.NewErrorDetails(
			"buyer id is required",
			string(errors.GeneralBadRequestError),
			"userID",
		)
	}
	return u.tradeRepository.BuyerStats(ctx, buyerID)
}
