package settlement

import (
	"context"

	"github.com/chanspick/PiCom/internal/usecase/matching"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/postgresql"

	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
)

// Usecase turns a match into a trade inside one serializable database
// transaction. Either both offers flip to filled and the trade row
// exists, or nothing happened.
type Usecase struct {
	db                postgresql.PostgreSQLClient
	offerRepository   offerv1.Repository
	tradeRepository   tradev1.Repository
	productRepository productv1.Repository
	logger            logger.Interface
}

// NewUsecase creates a new settlement usecase.
func NewUsecase(
	db postgresql.PostgreSQLClient,
	offerRepository offerv1.Repository,
	tradeRepository tradev1.Repository,
	productRepository productv1.Repository,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		db:                db,
		offerRepository:   offerRepository,
		tradeRepository:   tradeRepository,
		productRepository: productRepository,
		logger:            logger,
	}
}

// Settle executes the match. Inside the transaction both offers are
// re-checked by conditional update: if either already left the active
// state, the whole transaction rolls back and no trade happens. Returns
// the stored trade, or a typed error.
//
// Error codes: ErrStalePrecondition when an offer was consumed by a
// concurrent settlement, ErrTransactionConflict when the serializable
// transaction itself lost a race and can be retried.
func (u *Usecase) Settle(ctx context.Context, match *matching.Match) (*tradev1.Trade, error) {
	trade := tradev1.NewAuctionTrade(
		match.Ask.ProductID,
		match.Bid.OwnerID,
		match.Ask.OwnerID,
		match.Price,
		match.Ask.ID,
		match.Bid.ID,
	)

	err := postgresql.WithTxOptions(ctx, u.db, postgresql.SerializableTxOptions(), func(txCtx context.Context) error {
		for _, offerID := range []string{match.Ask.ID, match.Bid.ID} {
			filled, err := u.offerRepository.Fill(txCtx, offerID)
			if err != nil {
				return err
			}
			if !filled {
				return errors.NewErrorDetails(
					"offer no longer active",
					string(errors.ErrStalePrecondition),
					"offerID",
				)
			}
		}

		if err := u.tradeRepository.Store(txCtx, trade); err != nil {
			return err
		}

		return u.productRepository.RecordTrade(txCtx, trade.ProductID, trade.Price, trade.CreatedAt)
	})
	if err != nil {
		if postgresql.IsSerializationFailure(err) {
			return nil, errors.NewErrorDetails(
				"settlement lost a serialization race",
				string(errors.ErrTransactionConflict),
				"productID",
			)
		}
		return nil, err
	}

	u.logger.InfoContext(ctx, "Settled trade",
		logger.Field{Key: "tradeID", Value: trade.ID},
		logger.Field{Key: "productID", Value: trade.ProductID},
		logger.Field{Key: "price", Value: trade.Price},
	)

	return trade, nil
}
