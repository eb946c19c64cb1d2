package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	"github.com/chanspick/PiCom/pkg/logger"
	mockLogger "github.com/chanspick/PiCom/pkg/logger/mock"
	mockPg "github.com/chanspick/PiCom/pkg/postgresql/mock"
)

func TestListing_Store(t *testing.T) {
	ctx := context.Background()
	query := `INSERT INTO listings (id, part_id, seller_id, price, status, part_name, part_category, part_brand, buyer_id, sold_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tc *listingv1.Listing)
		testData *listingv1.Listing
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tc *listingv1.Listing) {
				mockpg.EXPECT().
					Exec(ctx, query,
						tc.ID,
						tc.PartID,
						tc.SellerID,
						tc.Price,
						tc.Status,
						tc.PartName,
						tc.PartCategory,
						tc.PartBrand,
						tc.BuyerID,
						tc.SoldAt,
						tc.CreatedAt,
						tc.UpdatedAt,
					).Return(pgconn.CommandTag{}, nil)

				mockLogger.EXPECT().
					Info("Inserted listing", logger.Field{
						Key:   "commandTag",
						Value: "",
					})
			},
			testData: &listingv1.Listing{
				ID:           "lst-1",
				PartID:       "part-1",
				SellerID:     "seller-1",
				Price:        450000,
				Status:       listingv1.StatusActive,
				PartName:     "RTX 4070",
				PartCategory: "gpu",
				PartBrand:    "NVIDIA",
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tc *listingv1.Listing) {
				mockpg.EXPECT().
					Exec(ctx, query,
						tc.ID,
						tc.PartID,
						tc.SellerID,
						tc.Price,
						tc.Status,
						tc.PartName,
						tc.PartCategory,
						tc.PartBrand,
						tc.BuyerID,
						tc.SoldAt,
						tc.CreatedAt,
						tc.UpdatedAt,
					).Return(pgconn.CommandTag{}, errors.New("error"))
			},
			testData: &listingv1.Listing{
				ID:       "lst-1",
				PartID:   "part-1",
				SellerID: "seller-1",
				Price:    450000,
				Status:   listingv1.StatusActive,
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			repo := NewRepository(pg, log)

			tc.mockFn(pg, log, tc.testData)

			err := repo.Store(ctx, tc.testData)
			tc.assertFn(t, err)
		})
	}
}

func TestListing_GetByID(t *testing.T) {
	ctx := context.Background()
	query := `SELECT id, part_id, seller_id, price, status, part_name, part_category, part_brand, buyer_id, sold_at, created_at, updated_at FROM listings WHERE id = $1`
	now := time.Now()
	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface)
		assertFn func(t *testing.T, err error, listing *listingv1.Listing)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, query, "lst-1").
					Return(mockRow)

				mockRow.EXPECT().
					Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*string) = "lst-1"
					*dest[1].(*string) = "part-1"
					*dest[2].(*string) = "seller-1"
					*dest[3].(*float64) = 450000
					*dest[4].(*listingv1.Status) = listingv1.StatusActive
					*dest[5].(*string) = "RTX 4070"
					*dest[6].(*string) = "gpu"
					*dest[7].(*string) = "NVIDIA"
					*dest[10].(*time.Time) = now
					*dest[11].(*time.Time) = now
					return nil
				})
			},
			assertFn: func(t *testing.T, err error, listing *listingv1.Listing) {
				assert.NoError(t, err)
				assert.Equal(t, "lst-1", listing.ID)
				assert.Equal(t, listingv1.StatusActive, listing.Status)
				assert.Nil(t, listing.BuyerID)
			},
		},
		{
			name: "not found",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, query, "lst-1").
					Return(mockRow)

				mockRow.EXPECT().
					Scan(gomock.Any()).Return(pgx.ErrNoRows)
			},
			assertFn: func(t *testing.T, err error, listing *listingv1.Listing) {
				assert.NoError(t, err)
				assert.Nil(t, listing)
			},
		},
		{
			name: "error: query fails",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, query, "lst-1").
					Return(mockRow)

				mockRow.EXPECT().
					Scan(gomock.Any()).Return(errors.New("error"))
			},
			assertFn: func(t *testing.T, err error, listing *listingv1.Listing) {
				assert.Error(t, err)
				assert.Nil(t, listing)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRowInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			repo := NewRepository(pg, log)

			tc.mockFn(pg, row)

			listing, err := repo.GetByID(ctx, "lst-1")
			tc.assertFn(t, err, listing)
		})
	}
}

func TestListing_MarkSold(t *testing.T) {
	ctx := context.Background()
	query := `UPDATE listings SET status = $1, buyer_id = $2, sold_at = NOW(), updated_at = NOW() WHERE id = $3 AND status = $4`
	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient)
		assertFn func(t *testing.T, sold bool, err error)
	}{
		{
			name: "active listing sold",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient) {
				mockpg.EXPECT().
					Exec(ctx, query, listingv1.StatusSold, "buyer-1", "lst-1", listingv1.StatusActive).
					Return(pgconn.NewCommandTag("UPDATE 1"), nil)
			},
			assertFn: func(t *testing.T, sold bool, err error) {
				assert.NoError(t, err)
				assert.True(t, sold)
			},
		},
		{
			name: "listing already sold",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient) {
				mockpg.EXPECT().
					Exec(ctx, query, listingv1.StatusSold, "buyer-1", "lst-1", listingv1.StatusActive).
					Return(pgconn.NewCommandTag("UPDATE 0"), nil)
			},
			assertFn: func(t *testing.T, sold bool, err error) {
				assert.NoError(t, err)
				assert.False(t, sold)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient) {
				mockpg.EXPECT().
					Exec(ctx, query, listingv1.StatusSold, "buyer-1", "lst-1", listingv1.StatusActive).
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			assertFn: func(t *testing.T, sold bool, err error) {
				assert.Error(t, err)
				assert.False(t, sold)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			repo := NewRepository(pg, log)

			tc.mockFn(pg)

			sold, err := repo.MarkSold(ctx, "lst-1", "buyer-1")
			tc.assertFn(t, sold, err)
		})
	}
}

func TestListing_UpdatePartFields(t *testing.T) {
	ctx := context.Background()
	query := `UPDATE listings SET part_name = $1, part_category = $2, part_brand = $3, updated_at = NOW() WHERE part_id = $4`
	fields := listingv1.PartFields{
		Name:     "RTX 4070 Super",
		Category: "gpu",
		Brand:    "NVIDIA",
	}
	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface)
		assertFn func(t *testing.T, count int64, err error)
	}{
		{
			name: "rewrites every listing of the part",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, query, fields.Name, fields.Category, fields.Brand, "part-1").
					Return(pgconn.NewCommandTag("UPDATE 5"), nil)

				mockLogger.EXPECT().
					Info("Propagated part fields to listings", logger.Field{
						Key:   "partID",
						Value: "part-1",
					}, logger.Field{
						Key:   "count",
						Value: int64(5),
					})
			},
			assertFn: func(t *testing.T, count int64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(5), count)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface) {
				mockpg.EXPECT().
					Exec(ctx, query, fields.Name, fields.Category, fields.Brand, "part-1").
					Return(pgconn.CommandTag{}, errors.New("error"))
			},
			assertFn: func(t *testing.T, count int64, err error) {
				assert.Error(t, err)
				assert.Equal(t, int64(0), count)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			repo := NewRepository(pg, log)

			tc.mockFn(pg, log)

			count, err := repo.UpdatePartFields(ctx, "part-1", fields)
			tc.assertFn(t, count, err)
		})
	}
}
