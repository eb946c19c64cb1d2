package listing

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	listingmock "github.com/chanspick/PiCom/internal/domain/listing/v1/mock"
	tradepublishermock "github.com/chanspick/PiCom/internal/domain/trade-publisher/v1/mock"
	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
	trademock "github.com/chanspick/PiCom/internal/domain/trade/v1/mock"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	mockPg "github.com/chanspick/PiCom/pkg/postgresql/mock"
)

// fakeTx satisfies pgx.Tx for the transaction helpers. Repositories are
// mocked separately, so only Commit and Rollback carry behavior.
type fakeTx struct {
	commits   int
	rollbacks int
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }
func (f *fakeTx) Commit(ctx context.Context) error {
	f.commits++
	return nil
}
func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rollbacks++
	return nil
}
func (f *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (f *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (f *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (f *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (f *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (f *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (f *fakeTx) Conn() *pgx.Conn                                               { return nil }

type listingFixture struct {
	ctrl           *gomock.Controller
	pg             *mockPg.MockPostgreSQLClient
	listingRepo    *listingmock.MockRepository
	tradeRepo      *trademock.MockRepository
	tradePublisher *tradepublishermock.MockTradePublisher
	tx             *fakeTx
	usecase        *Usecase
}

func setupListingFixture(t *testing.T) *listingFixture {
	ctrl := gomock.NewController(t)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	pg := mockPg.NewMockPostgreSQLClient(ctrl)
	listingRepo := listingmock.NewMockRepository(ctrl)
	tradeRepo := trademock.NewMockRepository(ctrl)
	tradePublisher := tradepublishermock.NewMockTradePublisher(ctrl)

	return &listingFixture{
		ctrl:           ctrl,
		pg:             pg,
		listingRepo:    listingRepo,
		tradeRepo:      tradeRepo,
		tradePublisher: tradePublisher,
		tx:             &fakeTx{},
		usecase:        NewUsecase(pg, listingRepo, tradeRepo, tradePublisher, log),
	}
}

func activeListing(id string) *listingv1.Listing {
	now := time.Now().UTC()
	return &listingv1.Listing{
		ID:           id,
		PartID:       "part-1",
		SellerID:     "seller-1",
		Price:        450000,
		Status:       listingv1.StatusActive,
		PartName:     "RTX 4070",
		PartCategory: "gpu",
		PartBrand:    "NVIDIA",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestListing_Buy(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name     string
		buyerID  string
		mockFn   func(f *listingFixture)
		assertFn func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error)
	}{
		{
			name:    "buyer takes the listing at the listed price",
			buyerID: "buyer-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
				f.pg.EXPECT().Begin(ctx).Return(f.tx, nil)
				f.listingRepo.EXPECT().MarkSold(gomock.Any(), "lst-1", "buyer-1").Return(true, nil)
				f.tradeRepo.EXPECT().Store(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, trade *tradev1.Trade) error {
						assert.Equal(t, tradev1.SourceListing, trade.Source)
						assert.Equal(t, "part-1", trade.ProductID)
						assert.Equal(t, "buyer-1", trade.BuyerID)
						assert.Equal(t, "seller-1", trade.SellerID)
						assert.Equal(t, float64(450000), trade.Price)
						return nil
					})
				f.tradePublisher.EXPECT().PublishTradeEvent(ctx, gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error) {
				assert.NoError(t, err)
				require.NotNil(t, trade)
				assert.Equal(t, float64(450000), trade.Price)
				assert.Equal(t, 1, f.tx.commits)
			},
		},
		{
			name:    "listing not found",
			buyerID: "buyer-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(nil, nil)
			},
			assertFn: func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralNotFoundError))
				assert.Nil(t, trade)
			},
		},
		{
			name:    "seller cannot buy their own listing",
			buyerID: "seller-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
			},
			assertFn: func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.ErrSelfPurchase))
				assert.Nil(t, trade)
			},
		},
		{
			name:    "sold listing is unavailable",
			buyerID: "buyer-1",
			mockFn: func(f *listingFixture) {
				sold := activeListing("lst-1")
				sold.Status = listingv1.StatusSold
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(sold, nil)
			},
			assertFn: func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.ErrListingUnavailable))
				assert.Nil(t, trade)
			},
		},
		{
			name:    "losing the purchase race rolls back",
			buyerID: "buyer-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
				f.pg.EXPECT().Begin(ctx).Return(f.tx, nil)
				f.listingRepo.EXPECT().MarkSold(gomock.Any(), "lst-1", "buyer-1").Return(false, nil)
			},
			assertFn: func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.ErrListingUnavailable))
				assert.Nil(t, trade)
				assert.Equal(t, 0, f.tx.commits)
				assert.Equal(t, 1, f.tx.rollbacks)
			},
		},
		{
			name:    "event publish failure does not undo the sale",
			buyerID: "buyer-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
				f.pg.EXPECT().Begin(ctx).Return(f.tx, nil)
				f.listingRepo.EXPECT().MarkSold(gomock.Any(), "lst-1", "buyer-1").Return(true, nil)
				f.tradeRepo.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil)
				f.tradePublisher.EXPECT().
					PublishTradeEvent(ctx, gomock.Any()).
					Return(stderrors.New("broker down"))
			},
			assertFn: func(t *testing.T, f *listingFixture, trade *tradev1.Trade, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, trade)
				assert.Equal(t, 1, f.tx.commits)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupListingFixture(t)
			defer f.ctrl.Finish()

			tc.mockFn(f)

			trade, err := f.usecase.Buy(ctx, "lst-1", tc.buyerID)
			tc.assertFn(t, f, trade, err)
		})
	}
}

func TestListing_Cancel(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name     string
		callerID string
		mockFn   func(f *listingFixture)
		assertFn func(t *testing.T, err error)
	}{
		{
			name:     "seller cancels their listing",
			callerID: "seller-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
				f.listingRepo.EXPECT().Cancel(ctx, "lst-1").Return(true, nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:     "only the seller can cancel",
			callerID: "someone-else",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralUnauthenticatedError))
			},
		},
		{
			name:     "listing not found",
			callerID: "seller-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(nil, nil)
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.GeneralNotFoundError))
			},
		},
		{
			name:     "listing already left the active state",
			callerID: "seller-1",
			mockFn: func(f *listingFixture) {
				f.listingRepo.EXPECT().GetByID(ctx, "lst-1").Return(activeListing("lst-1"), nil)
				f.listingRepo.EXPECT().Cancel(ctx, "lst-1").Return(false, nil)
			},
			assertFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.ErrListingUnavailable))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupListingFixture(t)
			defer f.ctrl.Finish()

			tc.mockFn(f)

			err := f.usecase.Cancel(ctx, "lst-1", tc.callerID)
			tc.assertFn(t, err)
		})
	}
}
