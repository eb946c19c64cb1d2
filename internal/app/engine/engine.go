package engine

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	offerreaderv1 "github.com/chanspick/PiCom/internal/domain/offer-reader/v1"
	offerv1 "github.com/chanspick/PiCom/internal/domain/offer/v1"
	tradepublisherv1 "github.com/chanspick/PiCom/internal/domain/trade-publisher/v1"
	tradev1 "github.com/chanspick/PiCom/internal/domain/trade/v1"
	"github.com/chanspick/PiCom/internal/usecase/matching"
	"github.com/chanspick/PiCom/internal/usecase/quote"
	"github.com/chanspick/PiCom/internal/usecase/settlement"
	"github.com/chanspick/PiCom/internal/usecase/validator"
	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
)

// queuedEvent keeps the Kafka message next to its decoded event so the
// worker can acknowledge the offset once the event is handled.
type queuedEvent struct {
	event *offerreaderv1.OfferEvent
	msg   kafka.Message
}

// Engine is the main loop of the marketplace: it consumes offer events,
// validates bids, matches offers, settles trades and keeps quotes
// fresh. Events are partitioned by product across a fixed worker pool,
// so each product's events are handled one at a time, in order.
type Engine struct {
	offerReader     offerreaderv1.OfferReader
	offerRepository offerv1.Repository
	validator       *validator.Usecase
	matcher         *matching.Usecase
	settler         *settlement.Usecase
	quotes          *quote.Usecase
	tradePublisher  tradepublisherv1.TradePublisher
	logger          logger.Interface

	workers    int
	queues     []chan queuedEvent
	queueDepth int

	cleanupInterval  time.Duration
	cleanupRetention time.Duration
	cleanupBatchSize int

	ctx    context.Context
	cancel context.CancelFunc
	// workCtx outlives ctx so queued events drain to completion during
	// a graceful stop; it is cancelled only when the stop deadline hits.
	workCtx    context.Context
	workCancel context.CancelFunc
	wg         sync.WaitGroup

	mu          sync.RWMutex
	totalTrades int64
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	offerReader offerreaderv1.OfferReader,
	offerRepository offerv1.Repository,
	validator *validator.Usecase,
	matcher *matching.Usecase,
	settler *settlement.Usecase,
	quotes *quote.Usecase,
	tradePublisher tradepublisherv1.TradePublisher,
	logger logger.Interface,
) *Engine {
	return NewEngineWithOptions(offerReader, offerRepository, validator, matcher, settler, quotes, tradePublisher, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options.
func NewEngineWithOptions(
	offerReader offerreaderv1.OfferReader,
	offerRepository offerv1.Repository,
	validator *validator.Usecase,
	matcher *matching.Usecase,
	settler *settlement.Usecase,
	quotes *quote.Usecase,
	tradePublisher tradepublisherv1.TradePublisher,
	logger logger.Interface,
	options *Options,
) *Engine {
	if options.Workers <= 0 {
		options.Workers = 1
	}
	if options.QueueDepth <= 0 {
		options.QueueDepth = 1
	}

	return &Engine{
		offerReader:     offerReader,
		offerRepository: offerRepository,
		validator:       validator,
		matcher:         matcher,
		settler:         settler,
		quotes:          quotes,
		tradePublisher:  tradePublisher,
		logger:          logger,

		workers:    options.Workers,
		queueDepth: options.QueueDepth,

		cleanupInterval:  options.CleanupInterval,
		cleanupRetention: options.CleanupRetention,
		cleanupBatchSize: options.CleanupBatchSize,
	}
}

// Start initializes the engine and starts processing routines.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.workCtx, e.workCancel = context.WithCancel(context.Background())

	e.queues = make([]chan queuedEvent, e.workers)
	for i := 0; i < e.workers; i++ {
		e.queues[i] = make(chan queuedEvent, e.queueDepth)
	}

	e.wg.Add(e.workers + 2)
	for i := 0; i < e.workers; i++ {
		go e.runWorker(i)
	}
	go e.runEventRouter()
	go e.runJanitor()

	e.logger.Info("Engine started", logger.Field{
		Key:   "workers",
		Value: e.workers,
	})

	return nil
}

// Stop gracefully shuts down the engine. The reader and janitor stop
// immediately; workers drain their queues to completion unless the
// provided context expires first.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.workCancel()
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.workCancel()
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runEventRouter reads offer events and routes each to the worker that
// owns its product. The offset is committed by the worker after the
// event is handled, never before, so a crash between read and handle
// redelivers the event; every handler downstream is a conditional
// update, so a replayed event converges on the same state.
func (e *Engine) runEventRouter() {
	defer e.wg.Done()
	defer func() {
		for _, q := range e.queues {
			close(q)
		}
	}()

	e.logger.Info("Starting event router")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Event router shutting down")
			e.offerReader.Close()
			return
		default:
			msg, event, err := e.offerReader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_offer_event",
				})
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if event == nil {
				// undecodable message, nothing to redeliver
				if err := e.commit(msg); err != nil {
					e.logger.ErrorContext(e.ctx, err, logger.Field{
						Key:   "action",
						Value: "commit_offer_event",
					})
				}
				continue
			}

			select {
			case e.queues[e.workerFor(event.ProductID)] <- queuedEvent{event: event, msg: msg}:
			case <-e.ctx.Done():
				continue
			}
		}
	}
}

func (e *Engine) commit(msg kafka.Message) error {
	// commit with a fresh context so shutdown does not lose the offset
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.offerReader.CommitMessages(ctx, msg)
}

// workerFor maps a product to its worker.
func (e *Engine) workerFor(productID string) int {
	h := fnv.New32a()
	h.Write([]byte(productID))
	return int(h.Sum32() % uint32(e.workers))
}

// runWorker drains one queue until it closes, acknowledging each
// offset only after its event was handled. A failed event is not
// committed; a restart redelivers it.
func (e *Engine) runWorker(id int) {
	defer e.wg.Done()

	for queued := range e.queues[id] {
		if err := e.handleEvent(e.workCtx, queued.event); err != nil {
			e.logger.ErrorContext(e.workCtx, err,
				logger.Field{Key: "action", Value: "handle_offer_event"},
				logger.Field{Key: "worker", Value: id},
				logger.Field{Key: "eventType", Value: queued.event.Type},
				logger.Field{Key: "productID", Value: queued.event.ProductID},
			)
			continue
		}

		if err := e.commit(queued.msg); err != nil {
			e.logger.ErrorContext(e.workCtx, err, logger.Field{
				Key:   "action",
				Value: "commit_offer_event",
			})
		}
	}
}

func (e *Engine) handleEvent(ctx context.Context, event *offerreaderv1.OfferEvent) error {
	switch event.Type {
	case offerreaderv1.EventOfferPlaced:
		return e.handleOfferPlaced(ctx, event)
	case offerreaderv1.EventProductDeactivated:
		return e.handleProductDeactivated(ctx, event)
	default:
		e.logger.Warn("Skipping unknown event type", logger.Field{
			Key:   "eventType",
			Value: event.Type,
		})
		return nil
	}
}

// handleOfferPlaced runs the pipeline for one new offer: validate if it
// is a pending bid, try exactly one match, settle it, then refresh the
// product's quote. A settlement that aborts on a stale offer or a lost
// serialization race leaves the offer resting; no retry here.
func (e *Engine) handleOfferPlaced(ctx context.Context, event *offerreaderv1.OfferEvent) error {
	offer, err := e.offerRepository.GetByID(ctx, event.OfferID)
	if err != nil {
		return err
	}
	if offer == nil {
		return nil
	}

	if offer.Side == offerv1.SideBid && offer.Status == offerv1.StatusPending {
		offer, err = e.validator.ValidateBid(ctx, offer.ID)
		if err != nil {
			return err
		}
		if offer == nil {
			// deleted or already handled, nothing entered the book
			return nil
		}
	}

	match, err := e.matcher.FindMatch(ctx, offer)
	if err != nil {
		return err
	}

	if match != nil {
		trade, err := e.settler.Settle(ctx, match)
		switch {
		case err == nil:
			e.recordTrade()
			e.publishTrade(ctx, trade)
		case errors.ErrorCodeEquals(err, errors.ErrStalePrecondition),
			errors.ErrorCodeEquals(err, errors.ErrTransactionConflict):
			e.logger.InfoContext(ctx, "Settlement aborted, offer rests",
				logger.Field{Key: "offerID", Value: offer.ID},
				logger.Field{Key: "reason", Value: err.Error()},
			)
		default:
			return err
		}
	}

	_, err = e.quotes.Refresh(ctx, event.ProductID)
	return err
}

// handleProductDeactivated clears the product's book and zeroes its quote.
func (e *Engine) handleProductDeactivated(ctx context.Context, event *offerreaderv1.OfferEvent) error {
	count, err := e.offerRepository.CancelActiveByProduct(ctx, event.ProductID)
	if err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Cleared book for deactivated product",
		logger.Field{Key: "productID", Value: event.ProductID},
		logger.Field{Key: "cancelled", Value: count},
	)

	_, err = e.quotes.Refresh(ctx, event.ProductID)
	return err
}

// publishTrade pushes the settled trade onto the trades topic. The
// trade is committed already; a publish failure only delays downstream
// consumers.
func (e *Engine) publishTrade(ctx context.Context, trade *tradev1.Trade) {
	if e.tradePublisher == nil || trade == nil {
		return
	}
	if err := e.tradePublisher.PublishTradeEvent(ctx, tradepublisherv1.CreateFromTrade(trade)); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish trade event",
			logger.Field{Key: "tradeID", Value: trade.ID},
		)
	}
}

// runJanitor periodically removes old terminal offers in small batches.
func (e *Engine) runJanitor() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cleanupInterval)
	defer ticker.Stop()

	e.logger.Info("Starting janitor", logger.Field{
		Key:   "interval",
		Value: e.cleanupInterval.String(),
	})

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Janitor shutting down")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-e.cleanupRetention)
			removed, err := e.offerRepository.DeleteTerminalBefore(e.ctx, cutoff, e.cleanupBatchSize)
			if err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "cleanup_offers",
				})
				continue
			}
			if removed > 0 {
				e.logger.Info("Removed stale offers", logger.Field{
					Key:   "count",
					Value: removed,
				})
			}
		}
	}
}

func (e *Engine) recordTrade() {
	e.mu.Lock()
	e.totalTrades++
	e.mu.Unlock()
}

// GetTotalTrades returns the number of trades settled since start.
func (e *Engine) GetTotalTrades() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalTrades
}
