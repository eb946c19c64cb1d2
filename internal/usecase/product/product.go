package product

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	offerpublisherv1 "github.com/chanspick/PiCom/internal/domain/offer-publisher/v1"
	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
)

// Usecase manages the auction catalog.
type Usecase struct {
	productRepository productv1.Repository
	tradeRepository   tradev1.Repository
	offerPublisher    offerpublisherv1.OfferPublisher
	logger            logger.Interface
}

// NewUsecase creates a new product usecase.
func NewUsecase(
	productRepository productv1.Repository,
	tradeRepository tradev1.Repository,
	offerPublisher offerpublisherv1.OfferPublisher,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		productRepository: productRepository,
		tradeRepository:   tradeRepository,
		offerPublisher:    offerPublisher,
		logger:            logger,
	}
}

// Create adds a product to the catalog.
func (u *Usecase) Create(ctx context.Context, name string) (*productv1.Product, error) {
	if name == "" {
		return nil, errors.NewErrorDetails(
			"missing product name",
			string(errors.GeneralBadRequestError),
			"name",
		)
	}

	now := time.Now().UTC()
	product := &productv1.Product{
		ID:        ulid.Make().String(),
		Name:      name,
		Status:    productv1.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.productRepository.Store(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID returns the product, or a not-found error.
func (u *Usecase) GetByID(ctx context.Context, productID string) (*productv1.Product, error) {
	product, err := u.productRepository.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.NewErrorDetails(
			"product not found",
			string(errors.GeneralNotFoundError),
			"productID",
		)
	}
	return product, nil
}

// Deactivate takes the product off the catalog and tells the engine to
// clear its book. The offer cancellation itself runs in the engine so
// it is ordered with the product's other events.
func (u *Usecase) Deactivate(ctx context.Context, productID string) error {
	product, err := u.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := u.productRepository.UpdateStatus(ctx, product.ID, productv1.StatusInactive); err != nil {
		return err
	}

	if u.offerPublisher != nil {
		event := &offerreaderv1.OfferEvent{
			Type:      offerreaderv1.EventProductDeactivated,
			ProductID: product.ID,
			EmittedAt: time.Now().UTC(),
		}
		if err := u.offerPublisher.PublishOfferEvent(ctx, event); err != nil {
			u.logger.WarnContext(ctx, "Failed to publish deactivation event",
				logger.Field{Key: "productID", Value: product.ID},
			)
		}
	}

	return nil
}

// PriceHistory returns the most recent trade prices, newest first.
func (u *Usecase) PriceHistory(ctx context.Context, productID string, limit int) ([]productv1.PricePoint, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.productRepository.PriceHistory(ctx, productID, limit)
}

// Trades returns the most recent trades for the product, newest first.
func (u *Usecase) Trades(ctx context.Context, productID string, limit int) ([]*tradev1.Trade, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.tradeRepository.ListByProduct(ctx, productID, limit)
}
