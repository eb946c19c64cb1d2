package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	offermock "github.com/chanspick/PiCom/internal/domain/offer/v1/mock"
	"github.com/chanspick/PiCom/pkg/logger"
)

func newOffer(id string, side offerv1.Side, price float64) *offerv1.Offer {
	now := time.Now().UTC()
	return &offerv1.Offer{
		ID:        id,
		ProductID: "prod-1",
		OwnerID:   "owner-" + id,
		Side:      side,
		Price:     price,
		Status:    offerv1.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMatching_FindMatch(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name     string
		offer    *offerv1.Offer
		mockFn   func(offerRepo *offermock.MockRepository)
		assertFn func(t *testing.T, match *Match, err error)
	}{
		{
			name:  "incoming bid crosses the lowest ask at the resting price",
			offer: newOffer("bid-1", offerv1.SideBid, 120000),
			mockFn: func(offerRepo *offermock.MockRepository) {
				offerRepo.EXPECT().
					BestActive(ctx, "prod-1", offerv1.SideAsk).
					Return(newOffer("ask-1", offerv1.SideAsk, 115000), nil)
			},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				require.NotNil(t, match)
				assert.Equal(t, "ask-1", match.Ask.ID)
				assert.Equal(t, "bid-1", match.Bid.ID)
				assert.Equal(t, float64(115000), match.Price)
			},
		},
		{
			name:  "incoming ask crosses the highest bid at the resting price",
			offer: newOffer("ask-1", offerv1.SideAsk, 110000),
			mockFn: func(offerRepo *offermock.MockRepository) {
				offerRepo.EXPECT().
					BestActive(ctx, "prod-1", offerv1.SideBid).
					Return(newOffer("bid-1", offerv1.SideBid, 118000), nil)
			},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				require.NotNil(t, match)
				assert.Equal(t, "ask-1", match.Ask.ID)
				assert.Equal(t, "bid-1", match.Bid.ID)
				assert.Equal(t, float64(118000), match.Price)
			},
		},
		{
			name:  "equal prices cross",
			offer: newOffer("bid-1", offerv1.SideBid, 115000),
			mockFn: func(offerRepo *offermock.MockRepository) {
				offerRepo.EXPECT().
					BestActive(ctx, "prod-1", offerv1.SideAsk).
					Return(newOffer("ask-1", offerv1.SideAsk, 115000), nil)
			},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				require.NotNil(t, match)
				assert.Equal(t, float64(115000), match.Price)
			},
		},
		{
			name:  "spread open, no match",
			offer: newOffer("bid-1", offerv1.SideBid, 110000),
			mockFn: func(offerRepo *offermock.MockRepository) {
				offerRepo.EXPECT().
					BestActive(ctx, "prod-1", offerv1.SideAsk).
					Return(newOffer("ask-1", offerv1.SideAsk, 115000), nil)
			},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				assert.Nil(t, match)
			},
		},
		{
			name:  "empty opposite book",
			offer: newOffer("bid-1", offerv1.SideBid, 120000),
			mockFn: func(offerRepo *offermock.MockRepository) {
				offerRepo.EXPECT().
					BestActive(ctx, "prod-1", offerv1.SideAsk).
					Return(nil, nil)
			},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				assert.Nil(t, match)
			},
		},
		{
			name: "inactive offer never matches",
			offer: func() *offerv1.Offer {
				o := newOffer("bid-1", offerv1.SideBid, 120000)
				o.Status = offerv1.StatusPending
				return o
			}(),
			mockFn: func(offerRepo *offermock.MockRepository) {},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				assert.Nil(t, match)
			},
		},
		{
			name:   "nil offer",
			offer:  nil,
			mockFn: func(offerRepo *offermock.MockRepository) {},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.NoError(t, err)
				assert.Nil(t, match)
			},
		},
		{
			name:  "book lookup failure propagates",
			offer: newOffer("bid-1", offerv1.SideBid, 120000),
			mockFn: func(offerRepo *offermock.MockRepository) {
				offerRepo.EXPECT().
					BestActive(ctx, "prod-1", offerv1.SideAsk).
					Return(nil, errors.New("error"))
			},
			assertFn: func(t *testing.T, match *Match, err error) {
				assert.Error(t, err)
				assert.Nil(t, match)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			log, err := logger.NewLogger()
			require.NoError(t, err)

			offerRepo := offermock.NewMockRepository(ctrl)
			usecase := NewUsecase(offerRepo, log)

			tc.mockFn(offerRepo)

			match, err := usecase.FindMatch(ctx, tc.offer)
			tc.assertFn(t, match, err)
		})
	}
}
