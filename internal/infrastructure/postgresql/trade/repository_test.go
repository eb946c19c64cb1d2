package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
	mockLogger "github.com/chanspick/PiCom/pkg/logger/mock"
	mockPg "github.com/chanspick/PiCom/pkg/postgresql/mock"
)

func TestTrade_BuyerStats(t *testing.T) {
	ctx := context.Background()
	query := `SELECT COUNT(*) FILTER (WHERE source = $2), COUNT(*) FILTER (WHERE source = $3), COALESCE(SUM(price), 0) FROM trades WHERE buyer_id = $1`
	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface)
		assertFn func(t *testing.T, stats *tradev1.BuyerStats, err error)
	}{
		{
			name: "aggregates by source",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, query, "buyer-1", tradev1.SourceAuction, tradev1.SourceListing).
					Return(mockRow)

				mockRow.EXPECT().
					Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*int64) = 3
					*dest[1].(*int64) = 2
					*dest[2].(*float64) = 1250.50
					return nil
				})
			},
			assertFn: func(t *testing.T, stats *tradev1.BuyerStats, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "buyer-1", stats.BuyerID)
				assert.Equal(t, int64(3), stats.WonBids)
				assert.Equal(t, int64(2), stats.Purchases)
				assert.Equal(t, 1250.50, stats.TotalSpent)
			},
		},
		{
			name: "buyer with no trades gets zeroes",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, query, "buyer-1", tradev1.SourceAuction, tradev1.SourceListing).
					Return(mockRow)

				mockRow.EXPECT().
					Scan(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, stats *tradev1.BuyerStats, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(0), stats.WonBids)
				assert.Equal(t, int64(0), stats.Purchases)
				assert.Equal(t, 0.0, stats.TotalSpent)
			},
		},
		{
			name: "error",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRow *mockPg.MockRowInterface) {
				mockpg.EXPECT().
					QueryRow(ctx, query, "buyer-1", tradev1.SourceAuction, tradev1.SourceListing).
					Return(mockRow)

				mockRow.EXPECT().
					Scan(gomock.Any()).Return(errors.New("error"))
			},
			assertFn: func(t *testing.T, stats *tradev1.BuyerStats, err error) {
				assert.Error(t, err)
				assert.Nil(t, stats)
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

			stats, err := repo.BuyerStats(ctx, "buyer-1")
			tc.assertFn(t, stats, err)
		})
	}
}
