package sellrequest

import (
	"context"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	partv1 "github.com/chanspick/PiCom/internal/domain/part/v1"
	sellrequestv1 "github.com/chanspick/PiCom/internal/domain/sellrequest/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/postgresql"
)

// Usecase runs the sell-request pipeline: sellers submit, a reviewer
// approves or rejects, and an approval becomes a fixed-price listing
// with the part fields denormalized onto it.
type Usecase struct {
	db                    postgresql.PostgreSQLClient
	sellRequestRepository sellrequestv1.Repository
	partRepository        partv1.Repository
	listingRepository     listingv1.Repository
	logger                logger.Interface
}

// NewUsecase creates a new sell request usecase.
func NewUsecase(
	db postgresql.PostgreSQLClient,
	sellRequestRepository sellrequestv1.Repository,
	partRepository partv1.Repository,
	listingRepository listingv1.Repository,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		db:                    db,
		sellRequestRepository: sellRequestRepository,
		partRepository:        partRepository,
		listingRepository:     listingRepository,
		logger:                logger,
	}
}

// Submit files a sell request for review.
func (u *Usecase) Submit(ctx context.Context, partID, sellerID string, price float64, condition string) (*sellrequestv1.SellRequest, error) {
	if sellerID == "" {
		return nil, errors.NewErrorDetails(
			"missing seller",
			string(errors.GeneralUnauthenticatedError),
			"sellerID",
		)
	}
	if price <= 0 {
		return nil, errors.NewErrorDetails(
			"price must be a positive number",
			string(errors.GeneralBadRequestError),
			"price",
		)
	}

	part, err := u.partRepository.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, errors.NewErrorDetails(
			"part not found",
			string(errors.GeneralNotFoundError),
			"partID",
		)
	}

	request := sellrequestv1.NewSellRequest(partID, sellerID, price, condition)
	if err := u.sellRequestRepository.Store(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetByID returns the request, or a not-found error.
func (u *Usecase) GetByID(ctx context.Context, requestID string) (*sellrequestv1.SellRequest, error) {
	request, err := u.sellRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.NewErrorDetails(
			"sell request not found",
			string(errors.GeneralNotFoundError),
			"requestID",
		)
	}
	return request, nil
}

// ListByStatus returns requests in the given state, oldest first.
func (u *Usecase) ListByStatus(ctx context.Context, status sellrequestv1.Status, limit int) ([]*sellrequestv1.SellRequest, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.sellRequestRepository.ListByStatus(ctx, status, limit)
}

// Approve turns a submitted request into an active listing. Listing
// creation and the status flip commit together; approving an already
// reviewed request changes nothing.
func (u *Usecase) Approve(ctx context.Context, requestID string) (*listingv1.Listing, error) {
	request, err := u.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	part, err := u.partRepository.GetByID(ctx, request.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, errors.NewErrorDetails(
			"part not found",
			string(errors.GeneralNotFoundError),
			"partID",
		)
	}

	listing := listingv1.NewListing(
		part.ID,
		request.SellerID,
		request.Price,
		part.Name,
		string(part.Category),
		part.Brand,
	)

	err = postgresql.WithTx(ctx, u.db, func(txCtx context.Context) error {
		approved, err := u.sellRequestRepository.Approve(txCtx, request.ID, listing.ID)
		if err != nil {
			return err
		}
		if !approved {
			return errors.NewErrorDetails(
				"sell request already reviewed",
				string(errors.GeneralBadRequestError),
				"requestID",
			)
		}
		return u.listingRepository.Store(txCtx, listing)
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Approved sell request",
		logger.Field{Key: "requestID", Value: request.ID},
		logger.Field{Key: "listingID", Value: listing.ID},
	)

	return listing, nil
}

// Reject declines a submitted request with a reason.
func (u *Usecase) Reject(ctx context.Context, requestID, reason string) error {
	request, err := u.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	rejected, err := u.sellRequestRepository.Reject(ctx, request.ID, reason)
	if err != nil {
		return err
	}
	if !rejected {
		return errors.NewErrorDetails(
			"sell request already reviewed",
			string(errors.GeneralBadRequestError),
			"requestID",
		)
	}
	return nil
}
