package quote

import (
	"context"
	"encoding/json"

	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/redis"
)

const quoteKeyPrefix = "quote:"

// Usecase keeps the per-product quote projection in step with the book.
// The database row is the source of truth; Redis carries a best-effort
// live copy for subscribers and fast reads.
type Usecase struct {
	productRepository productv1.Repository
	cache             redis.Client
	channel           string
	logger            logger.Interface
}

// NewUsecase creates a new quote usecase. cache may be nil, in which
// case only the database projection is maintained.
func NewUsecase(productRepository productv1.Repository, cache redis.Client, channel string, logger logger.Interface) *Usecase {
	return &Usecase{
		productRepository: productRepository,
		cache:             cache,
		channel:           channel,
		logger:            logger,
	}
}

// Refresh recomputes the product's lowest ask and highest bid from the
// active offers. The recompute reads the book as it is now, so running
// it after every book change, or twice for the same change, always
// converges on the same values.
func (u *Usecase) Refresh(ctx context.Context, productID string) (*productv1.Quote, error) {
	quote, err := u.productRepository.RefreshQuote(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}

	u.publish(ctx, quote)

	return quote, nil
}

// Get returns the current quote for a product, nil when unknown.
func (u *Usecase) Get(ctx context.Context, productID string) (*productv1.Quote, error) {
	return u.productRepository.GetQuote(ctx, productID)
}

// publish mirrors the quote into Redis and notifies subscribers. Cache
// failures are logged and swallowed; the database already holds the
// committed projection.
func (u *Usecase) publish(ctx context.Context, quote *productv1.Quote) {
	if u.cache == nil {
		return
	}

	fields := map[string]any{
		"updatedAt": quote.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if quote.LowestAsk != nil {
		fields["lowestAsk"] = *quote.LowestAsk
	}
	if quote.HighestBid != nil {
		fields["highestBid"] = *quote.HighestBid
	}
	if quote.LastTradedPrice != nil {
		fields["lastTradedPrice"] = *quote.LastTradedPrice
	}

	if _, err := u.cache.HSet(ctx, quoteKeyPrefix+quote.ProductID, fields); err != nil {
		u.logger.WarnContext(ctx, "Failed to cache quote",
			logger.Field{Key: "productID", Value: quote.ProductID},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return
	}
	if _, err := u.cache.Publish(ctx, u.channel, payload); err != nil {
		u.logger.WarnContext(ctx, "Failed to publish quote",
			logger.Field{Key: "productID", Value: quote.ProductID},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
}
