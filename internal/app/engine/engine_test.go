package engine

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	offerreadermock "github.com/chanspick/PiCom/internal/domain/offer-reader/v1/mock"
	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	offermock "github.com/chanspick/PiCom/internal/domain/offer/v1/mock"
	productv1 "github.com/chanspick/PiCom/internal/domain/product/v1"
	productmock "github.com/chanspick/PiCom/internal/domain/product/v1/mock"
	tradepublishermock "github.com/chanspick/PiCom/internal/domain/trade-publisher/v1/mock"
	trademock "github.com/chanspick/PiCom/internal/domain/trade/v1/mock"
	"github.com/chanspick/PiCom/internal/usecase/matching"
	"github.com/chanspick/PiCom/internal/usecase/quote"
	"github.com/chanspick/PiCom/internal/usecase/settlement"
	"github.com/chanspick/PiCom/internal/usecase/validator"
	"github.com/chanspick/PiCom/pkg/logger"
	mockPg "github.com/chanspick/PiCom/pkg/postgresql/mock"
)

// fakeTx satisfies pgx.Tx for the transaction helpers. Repositories are
// mocked separately, so nothing here carries behavior.
type fakeTx struct{}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }
func (f *fakeTx) Commit(ctx context.Context) error          { return nil }
func (f *fakeTx) Rollback(ctx context.Context) error        { return nil }
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

type testFixture struct {
	ctrl           *gomock.Controller
	pg             *mockPg.MockPostgreSQLClient
	offerReader    *offerreadermock.MockOfferReader
	offerRepo      *offermock.MockRepository
	productRepo    *productmock.MockRepository
	tradeRepo      *trademock.MockRepository
	tradePublisher *tradepublishermock.MockTradePublisher
	logger         *logger.Logger
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	return &testFixture{
		ctrl:           ctrl,
		pg:             mockPg.NewMockPostgreSQLClient(ctrl),
		offerReader:    offerreadermock.NewMockOfferReader(ctrl),
		offerRepo:      offermock.NewMockRepository(ctrl),
		productRepo:    productmock.NewMockRepository(ctrl),
		tradeRepo:      trademock.NewMockRepository(ctrl),
		tradePublisher: tradepublishermock.NewMockTradePublisher(ctrl),
		logger:         log,
	}
}

func (f *testFixture) teardown() {
	f.ctrl.Finish()
}

// createTestEngine wires the real usecases over the fixture's mocks.
func createTestEngine(f *testFixture, options *Options) *Engine {
	return NewEngineWithOptions(
		f.offerReader,
		f.offerRepo,
		validator.NewUsecase(f.offerRepo, f.productRepo, f.logger),
		matching.NewUsecase(f.offerRepo, f.logger),
		settlement.NewUsecase(f.pg, f.offerRepo, f.tradeRepo, f.productRepo, f.logger),
		quote.NewUsecase(f.productRepo, nil, "quotes", f.logger),
		f.tradePublisher,
		f.logger,
		options,
	)
}

func activeOffer(id string, side offerv1.Side, price float64) *offerv1.Offer {
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

func placedEvent(offerID string) *offerreaderv1.OfferEvent {
	return &offerreaderv1.OfferEvent{
		Type:      offerreaderv1.EventOfferPlaced,
		OfferID:   offerID,
		ProductID: "prod-1",
		EmittedAt: time.Now().UTC(),
	}
}

func expectRefresh(f *testFixture) {
	f.productRepo.EXPECT().
		RefreshQuote(gomock.Any(), "prod-1").
		Return(&productv1.Quote{ProductID: "prod-1", UpdatedAt: time.Now().UTC()}, nil)
}

func TestEngine_HandleOfferPlaced(t *testing.T) {
	testCases := []struct {
		name           string
		setupMocks     func(f *testFixture)
		expectedTrades int64
		expectedError  bool
	}{
		{
			name: "crossing ask settles against the highest bid",
			setupMocks: func(f *testFixture) {
				ask := activeOffer("ask-1", offerv1.SideAsk, 110000)
				bid := activeOffer("bid-1", offerv1.SideBid, 118000)

				f.offerRepo.EXPECT().GetByID(gomock.Any(), "ask-1").Return(ask, nil)
				f.offerRepo.EXPECT().BestActive(gomock.Any(), "prod-1", offerv1.SideBid).Return(bid, nil)

				f.pg.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(&fakeTx{}, nil)
				f.offerRepo.EXPECT().Fill(gomock.Any(), "ask-1").Return(true, nil)
				f.offerRepo.EXPECT().Fill(gomock.Any(), "bid-1").Return(true, nil)
				f.tradeRepo.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil)
				f.productRepo.EXPECT().RecordTrade(gomock.Any(), "prod-1", float64(118000), gomock.Any()).Return(nil)

				f.tradePublisher.EXPECT().PublishTradeEvent(gomock.Any(), gomock.Any()).Return(nil)
				expectRefresh(f)
			},
			expectedTrades: 1,
		},
		{
			name: "pending bid is validated, rests without a match",
			setupMocks: func(f *testFixture) {
				pending := activeOffer("bid-1", offerv1.SideBid, 110000)
				pending.Status = offerv1.StatusPending
				activated := activeOffer("bid-1", offerv1.SideBid, 110000)

				f.offerRepo.EXPECT().GetByID(gomock.Any(), "bid-1").Return(pending, nil)
				// validator re-reads, checks the product, activates
				f.offerRepo.EXPECT().GetByID(gomock.Any(), "bid-1").Return(pending, nil)
				f.productRepo.EXPECT().GetByID(gomock.Any(), "prod-1").
					Return(&productv1.Product{ID: "prod-1", Status: productv1.StatusActive}, nil)
				f.offerRepo.EXPECT().Activate(gomock.Any(), "bid-1").Return(true, nil)
				f.offerRepo.EXPECT().GetByID(gomock.Any(), "bid-1").Return(activated, nil)

				f.offerRepo.EXPECT().BestActive(gomock.Any(), "prod-1", offerv1.SideAsk).Return(nil, nil)
				expectRefresh(f)
			},
			expectedTrades: 0,
		},
		{
			name: "invalid bid is deleted and nothing enters the book",
			setupMocks: func(f *testFixture) {
				pending := activeOffer("bid-1", offerv1.SideBid, 110000)
				pending.Status = offerv1.StatusPending

				f.offerRepo.EXPECT().GetByID(gomock.Any(), "bid-1").Return(pending, nil)
				f.offerRepo.EXPECT().GetByID(gomock.Any(), "bid-1").Return(pending, nil)
				f.productRepo.EXPECT().GetByID(gomock.Any(), "prod-1").Return(nil, nil)
				f.offerRepo.EXPECT().Delete(gomock.Any(), "bid-1").Return(nil)
			},
			expectedTrades: 0,
		},
		{
			name: "offer vanished before handling",
			setupMocks: func(f *testFixture) {
				f.offerRepo.EXPECT().GetByID(gomock.Any(), "ask-1").Return(nil, nil)
			},
			expectedTrades: 0,
		},
		{
			name: "stale settlement leaves the offer resting",
			setupMocks: func(f *testFixture) {
				ask := activeOffer("ask-1", offerv1.SideAsk, 110000)
				bid := activeOffer("bid-1", offerv1.SideBid, 118000)

				f.offerRepo.EXPECT().GetByID(gomock.Any(), "ask-1").Return(ask, nil)
				f.offerRepo.EXPECT().BestActive(gomock.Any(), "prod-1", offerv1.SideBid).Return(bid, nil)

				f.pg.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(&fakeTx{}, nil)
				f.offerRepo.EXPECT().Fill(gomock.Any(), "ask-1").Return(false, nil)

				expectRefresh(f)
			},
			expectedTrades: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t)
			defer f.teardown()

			tc.setupMocks(f)

			engine := createTestEngine(f, DefaultEngineOptions())

			offerID := "ask-1"
			if tc.name == "pending bid is validated, rests without a match" ||
				tc.name == "invalid bid is deleted and nothing enters the book" {
				offerID = "bid-1"
			}

			err := engine.handleEvent(context.Background(), placedEvent(offerID))
			if tc.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedTrades, engine.GetTotalTrades())
		})
	}
}

func TestEngine_HandleProductDeactivated(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	f.offerRepo.EXPECT().CancelActiveByProduct(gomock.Any(), "prod-1").Return(int64(3), nil)
	expectRefresh(f)

	engine := createTestEngine(f, DefaultEngineOptions())

	err := engine.handleEvent(context.Background(), &offerreaderv1.OfferEvent{
		Type:      offerreaderv1.EventProductDeactivated,
		ProductID: "prod-1",
		EmittedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
}

func TestEngine_UnknownEventType(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	engine := createTestEngine(f, DefaultEngineOptions())

	err := engine.handleEvent(context.Background(), &offerreaderv1.OfferEvent{
		Type:      "unknown",
		ProductID: "prod-1",
	})
	assert.NoError(t, err)
}

func TestEngine_WorkerFor(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	engine := createTestEngine(f, &Options{
		Workers:          4,
		QueueDepth:       8,
		CleanupInterval:  time.Hour,
		CleanupRetention: time.Hour,
		CleanupBatchSize: 10,
	})

	// same product always lands on the same worker
	first := engine.workerFor("prod-1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.workerFor("prod-1"))
	}

	for _, productID := range []string{"prod-1", "prod-2", "prod-3", "another"} {
		w := engine.workerFor(productID)
		assert.GreaterOrEqual(t, w, 0)
		assert.Less(t, w, 4)
	}
}

func TestEngine_StartProcessesAndStops(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	event := placedEvent("ask-1")
	handled := make(chan struct{})

	first := f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		Return(kafka.Message{Topic: "offer-events", Offset: 1}, event, nil)
	f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		After(first).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *offerreaderv1.OfferEvent, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	f.offerReader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	f.offerReader.EXPECT().Close().Return(nil)

	f.offerRepo.EXPECT().GetByID(gomock.Any(), "ask-1").Return(nil, nil).
		Do(func(_ context.Context, _ string) { close(handled) })

	engine := createTestEngine(f, &Options{
		Workers:          2,
		QueueDepth:       4,
		CleanupInterval:  time.Hour,
		CleanupRetention: time.Hour,
		CleanupBatchSize: 10,
	})

	require.NoError(t, engine.Start(context.Background()))

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not processed")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, engine.Stop(stopCtx))
}

func TestEngine_CommitsOnlyAfterProcessing(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	event := placedEvent("ask-1")
	gate := make(chan struct{})
	entered := make(chan struct{})
	committed := make(chan struct{})

	first := f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		Return(kafka.Message{Topic: "offer-events", Offset: 7}, event, nil)
	f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		After(first).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *offerreaderv1.OfferEvent, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	f.offerReader.EXPECT().
		CommitMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, int64(7), msgs[0].Offset)
			close(committed)
			return nil
		})
	f.offerReader.EXPECT().Close().Return(nil)

	f.offerRepo.EXPECT().GetByID(gomock.Any(), "ask-1").
		DoAndReturn(func(_ context.Context, _ string) (*offerv1.Offer, error) {
			close(entered)
			<-gate
			return nil, nil
		})

	engine := createTestEngine(f, &Options{
		Workers:          1,
		QueueDepth:       4,
		CleanupInterval:  time.Hour,
		CleanupRetention: time.Hour,
		CleanupBatchSize: 10,
	})

	require.NoError(t, engine.Start(context.Background()))

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not picked up")
	}

	// the worker is mid-handle; the offset must not be committed yet
	select {
	case <-committed:
		t.Fatal("offset committed before the event was handled")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)

	select {
	case <-committed:
	case <-time.After(2 * time.Second):
		t.Fatal("offset was not committed after handling")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, engine.Stop(stopCtx))
}

func TestEngine_StopDrainsQueuedEvents(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	event := placedEvent("ask-1")
	gate := make(chan struct{})
	entered := make(chan struct{})
	readerStopped := make(chan struct{})

	var handleErr error

	first := f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		Return(kafka.Message{Topic: "offer-events", Offset: 1}, event, nil)
	f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		After(first).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *offerreaderv1.OfferEvent, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	f.offerReader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	f.offerReader.EXPECT().Close().
		DoAndReturn(func() error {
			close(readerStopped)
			return nil
		})

	f.offerRepo.EXPECT().GetByID(gomock.Any(), "ask-1").
		DoAndReturn(func(ctx context.Context, _ string) (*offerv1.Offer, error) {
			close(entered)
			<-gate
			handleErr = ctx.Err()
			return nil, nil
		})

	engine := createTestEngine(f, &Options{
		Workers:          1,
		QueueDepth:       4,
		CleanupInterval:  time.Hour,
		CleanupRetention: time.Hour,
		CleanupBatchSize: 10,
	})

	require.NoError(t, engine.Start(context.Background()))

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not picked up")
	}

	stopDone := make(chan error, 1)
	go func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		stopDone <- engine.Stop(stopCtx)
	}()

	// the reader shuts down first; the in-flight event keeps a live
	// context and finishes
	select {
	case <-readerStopped:
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not stop")
	}

	close(gate)

	select {
	case err := <-stopDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.NoError(t, handleErr)
}

func TestEngine_JanitorRemovesStaleOffers(t *testing.T) {
	f := setupTestFixture(t)
	defer f.teardown()

	removed := make(chan struct{})

	f.offerReader.EXPECT().
		ReadMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *offerreaderv1.OfferEvent, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	f.offerReader.EXPECT().Close().Return(nil)

	var once bool
	f.offerRepo.EXPECT().
		DeleteTerminalBefore(gomock.Any(), gomock.Any(), 10).
		DoAndReturn(func(_ context.Context, _ time.Time, _ int) (int64, error) {
			if !once {
				once = true
				close(removed)
			}
			return 2, nil
		}).
		MinTimes(1)

	engine := createTestEngine(f, &Options{
		Workers:          1,
		QueueDepth:       1,
		CleanupInterval:  20 * time.Millisecond,
		CleanupRetention: time.Hour,
		CleanupBatchSize: 10,
	})

	require.NoError(t, engine.Start(context.Background()))

	select {
	case <-removed:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor never ran")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, engine.Stop(stopCtx))
}
