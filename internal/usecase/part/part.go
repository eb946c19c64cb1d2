package part

import (
	"context"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	partv1 "github.com/chanspick/PiCom/internal/domain/part/v1"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
)

// Usecase manages the parts catalog. Listings denormalize the part
// name, category and brand, so every part update is propagated to the
// listings that copied them.
type Usecase struct {
	partRepository    partv1.Repository
	listingRepository listingv1.Repository
	logger            logger.Interface
}

// NewUsecase creates a new part usecase.
func NewUsecase(partRepository partv1.Repository, listingRepository listingv1.Repository, logger logger.Interface) *Usecase {
	return &Usecase{
		partRepository:    partRepository,
		listingRepository: listingRepository,
		logger:            logger,
	}
}

// Create adds a part to the catalog.
func (u *Usecase) Create(ctx context.Context, name string, category partv1.Category, brand, model, specs string) (*partv1.Part, error) {
	if name == "" {
		return nil, errors.NewErrorDetails(
			"missing part name",
			string(errors.GeneralBadRequestError),
			"name",
		)
	}
	if !partv1.ValidCategory(category) {
		return nil, errors.NewErrorDetails(
			"unknown part category",
			string(errors.GeneralBadRequestError),
			"category",
		)
	}

	part := partv1.NewPart(name, category, brand, model, specs)
	if err := u.partRepository.Store(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// GetByID returns the part, or a not-found error.
func (u *Usecase) GetByID(ctx context.Context, partID string) (*partv1.Part, error) {
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
	return part, nil
}

// List returns parts, optionally filtered by category.
func (u *Usecase) List(ctx context.Context, category partv1.Category, limit int) ([]*partv1.Part, error) {
	if category != "" && !partv1.ValidCategory(category) {
		return nil, errors.NewErrorDetails(
			"unknown part category",
			string(errors.GeneralBadRequestError),
			"category",
		)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.partRepository.List(ctx, category, limit)
}

// Update rewrites the part and pushes the denormalized fields out to
// its listings. The propagation is idempotent: re-running it writes the
// same values again.
func (u *Usecase) Update(ctx context.Context, part *partv1.Part) (*partv1.Part, error) {
	if !partv1.ValidCategory(part.Category) {
		return nil, errors.NewErrorDetails(
			"unknown part category",
			string(errors.GeneralBadRequestError),
			"category",
		)
	}

	updated, err := u.partRepository.Update(ctx, part)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.NewErrorDetails(
			"part not found",
			string(errors.GeneralNotFoundError),
			"partID",
		)
	}

	count, err := u.listingRepository.UpdatePartFields(ctx, part.ID, listingv1.PartFields{
		Name:     part.Name,
		Category: string(part.Category),
		Brand:    part.Brand,
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Updated part",
		logger.Field{Key: "partID", Value: part.ID},
		logger.Field{Key: "listingsTouched", Value: count},
	)

	return u.GetByID(ctx, part.ID)
}
