package listing

import (
	"context"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	tradepublisherv1 "github.com/chanspick/PiCom/internal/domain/trade-publisher/v1"
	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/postgresql"
)

// Usecase covers the fixed-price path: a buyer takes a listing at its
// asking price, outside the auction book.
type Usecase struct {
	db                postgresql.PostgreSQLClient
	listingRepository listingv1.Repository
	tradeRepository   tradev1.Repository
	tradePublisher    tradepublisherv1.TradePublisher
	logger            logger.Interface
}

// NewUsecase creates a new listing usecase. tradePublisher may be nil
// when no event stream is wired.
func NewUsecase(
	db postgresql.PostgreSQLClient,
	listingRepository listingv1.Repository,
	tradeRepository tradev1.Repository,
	tradePublisher tradepublisherv1.TradePublisher,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		db:                db,
		listingRepository: listingRepository,
		tradeRepository:   tradeRepository,
		tradePublisher:    tradePublisher,
		logger:            logger,
	}
}

// Buy purchases the listing for the buyer at the listed price. The
// listing flips to sold and the trade row is written in one
// transaction; when two buyers race, the conditional update lets
// exactly one win and the loser gets ErrListingUnavailable.
func (u *Usecase) Buy(ctx context.Context, listingID, buyerID string) (*tradev1.Trade, error) {
	listing, err := u.listingRepository.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.NewErrorDetails(
			"listing not found",
			string(errors.GeneralNotFoundError),
			"listingID",
		)
	}
	if listing.SellerID == buyerID {
		return nil, errors.NewErrorDetails(
			"cannot buy your own listing",
			string(errors.ErrSelfPurchase),
			"listingID",
		)
	}
	if !listing.IsActive() {
		return nil, errors.NewErrorDetails(
			"listing is not available",
			string(errors.ErrListingUnavailable),
			"listingID",
		)
	}

	trade := tradev1.NewListingTrade(listing.PartID, buyerID, listing.SellerID, listing.Price, listing.ID)

	err = postgresql.WithTx(ctx, u.db, func(txCtx context.Context) error {
		sold, err := u.listingRepository.MarkSold(txCtx, listing.ID, buyerID)
		if err != nil {
			return err
		}
		if !sold {
			return errors.NewErrorDetails(
				"listing is not available",
				string(errors.ErrListingUnavailable),
				"listingID",
			)
		}
		return u.tradeRepository.Store(txCtx, trade)
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Listing sold",
		logger.Field{Key: "listingID", Value: listing.ID},
		logger.Field{Key: "tradeID", Value: trade.ID},
	)

	if u.tradePublisher != nil {
		if err := u.tradePublisher.PublishTradeEvent(ctx, tradepublisherv1.CreateFromTrade(trade)); err != nil {
			// the sale is committed; the event stream catches up elsewhere
			u.logger.WarnContext(ctx, "Failed to publish listing trade event",
				logger.Field{Key: "tradeID", Value: trade.ID},
			)
		}
	}

	return trade, nil
}

// GetByID returns the listing, or a not-found error.
func (u *Usecase) GetByID(ctx context.Context, listingID string) (*listingv1.Listing, error) {
	listing, err := u.listingRepository.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.NewErrorDetails(
			"listing not found",
			string(errors.GeneralNotFoundError),
			"listingID",
		)
	}
	return listing, nil
}

// ListByPart returns listings for a part, newest first.
func (u *Usecase) ListByPart(ctx context.Context, partID string, status listingv1.Status, limit int) ([]*listingv1.Listing, error) {
	return u.listingRepository.ListByPart(ctx, partID, status, limit)
}

// Cancel withdraws the caller's active listing.
func (u *Usecase) Cancel(ctx context.Context, listingID, callerID string) error {
	listing, err := u.listingRepository.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return errors.NewErrorDetails(
			"listing not found",
			string(errors.GeneralNotFoundError),
			"listingID",
		)
	}
	if listing.SellerID != callerID {
		return errors.NewErrorDetails(
			"only the seller can cancel a listing",
			string(errors.GeneralUnauthenticatedError),
			"listingID",
		)
	}

	cancelled, err := u.listingRepository.Cancel(ctx, listingID)
	if err != nil {
		return err
	}
	if !cancelled {
		return errors.NewErrorDetails(
			"listing is not available",
			string(errors.ErrListingUnavailable),
			"listingID",
		)
	}
	return nil
}
