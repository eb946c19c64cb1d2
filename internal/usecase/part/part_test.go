package part

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	listingmock "github.com/chanspick/PiCom/internal/domain/listing/v1/mock"
	partv1 "github.com/chanspick/PiCom/internal/domain/part/v1"
	partmock "github.com/chanspick/PiCom/internal/domain/part/v1/mock"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
)

type partFixture struct {
	ctrl        *gomock.Controller
	partRepo    *partmock.MockRepository
	listingRepo *listingmock.MockRepository
	usecase     *Usecase
}

func setupPartFixture(t *testing.T) *partFixture {
	ctrl := gomock.NewController(t)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	partRepo := partmock.NewMockRepository(ctrl)
	listingRepo := listingmock.NewMockRepository(ctrl)

	return &partFixture{
		ctrl:        ctrl,
		partRepo:    partRepo,
		listingRepo: listingRepo,
		usecase:     NewUsecase(partRepo, listingRepo, log),
	}
}

func testPart() *partv1.Part {
	return &partv1.Part{
		ID:       "part-1",
		Name:     "RTX 4070",
		Category: partv1.CategoryGPU,
		Brand:    "NVIDIA",
		Model:    "Founders Edition",
	}
}

func TestPart_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("part enters the catalog", func(t *testing.T) {
		f := setupPartFixture(t)
		defer f.ctrl.Finish()

		f.partRepo.EXPECT().Store(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, part *partv1.Part) error {
				assert.Equal(t, "RTX 4070", part.Name)
				assert.Equal(t, partv1.CategoryGPU, part.Category)
				assert.NotEmpty(t, part.ID)
				return nil
			})

		created, err := f.usecase.Create(ctx, "RTX 4070", partv1.CategoryGPU, "NVIDIA", "Founders Edition", "")
		assert.NoError(t, err)
		require.NotNil(t, created)
	})

	t.Run("missing name", func(t *testing.T) {
		f := setupPartFixture(t)
		defer f.ctrl.Finish()

		created, err := f.usecase.Create(ctx, "", partv1.CategoryGPU, "NVIDIA", "", "")
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralBadRequestError))
		assert.Nil(t, created)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := setupPartFixture(t)
		defer f.ctrl.Finish()

		created, err := f.usecase.Create(ctx, "RTX 4070", partv1.Category("toaster"), "NVIDIA", "", "")
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralBadRequestError))
		assert.Nil(t, created)
	})
}

func TestPart_Update(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name     string
		mockFn   func(f *partFixture)
		assertFn func(t *testing.T, part *partv1.Part, err error)
	}{
		{
			name: "update propagates denormalized fields to listings",
			mockFn: func(f *partFixture) {
				f.partRepo.EXPECT().Update(ctx, gomock.Any()).Return(true, nil)
				f.listingRepo.EXPECT().
					UpdatePartFields(ctx, "part-1", listingv1.PartFields{
						Name:     "RTX 4070",
						Category: "gpu",
						Brand:    "NVIDIA",
					}).
					Return(int64(4), nil)
				f.partRepo.EXPECT().GetByID(ctx, "part-1").Return(testPart(), nil)
			},
			assertFn: func(t *testing.T, part *partv1.Part, err error) {
				assert.NoError(t, err)
				require.NotNil(t, part)
				assert.Equal(t, "part-1", part.ID)
			},
		},
		{
			name: "unknown part",
			mockFn: func(f *partFixture) {
				f.partRepo.EXPECT().Update(ctx, gomock.Any()).Return(false, nil)
			},
			assertFn: func(t *testing.T, part *partv1.Part, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralNotFoundError))
				assert.Nil(t, part)
			},
		},
		{
			name: "propagation failure surfaces",
			mockFn: func(f *partFixture) {
				f.partRepo.EXPECT().Update(ctx, gomock.Any()).Return(true, nil)
				f.listingRepo.EXPECT().
					UpdatePartFields(ctx, "part-1", gomock.Any()).
					Return(int64(0), stderrors.New("error"))
			},
			assertFn: func(t *testing.T, part *partv1.Part, err error) {
				assert.Error(t, err)
				assert.Nil(t, part)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupPartFixture(t)
			defer f.ctrl.Finish()

			tc.mockFn(f)

			part, err := f.usecase.Update(ctx, testPart())
			tc.assertFn(t, part, err)
		})
	}
}

func TestPart_List(t *testing.T) {
	ctx := context.Background()

	t.Run("category filter passes through with a clamped limit", func(t *testing.T) {
		f := setupPartFixture(t)
		defer f.ctrl.Finish()

		f.partRepo.EXPECT().List(ctx, partv1.CategoryGPU, 100).
			Return([]*partv1.Part{testPart()}, nil)

		parts, err := f.usecase.List(ctx, partv1.CategoryGPU, 0)
		assert.NoError(t, err)
		assert.Len(t, parts, 1)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		f := setupPartFixture(t)
		defer f.ctrl.Finish()

		parts, err := f.usecase.List(ctx, partv1.Category("toaster"), 10)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralBadRequestError))
		assert.Nil(t, parts)
	})
}
