package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chanspick/PiCom/internal/api"
	app "github.com/chanspick/PiCom/internal/app/engine"
	listingrepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/listing"
	offerrepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/offer"
	partrepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/part"
	productrepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/product"
	sellrequestrepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/sellrequest"
	traderepo "github.com/chanspick/PiCom/internal/infrastructure/postgresql/trade"
	listinguc "github.com/chanspick/PiCom/internal/usecase/listing"
	"github.com/chanspick/PiCom/internal/usecase/matching"
	offeruc "github.com/chanspick/PiCom/internal/usecase/offer"
	offerpublisher "github.com/chanspick/PiCom/internal/usecase/offer-publisher"
	offerreader "github.com/chanspick/PiCom/internal/usecase/offer-reader"
	partuc "github.com/chanspick/PiCom/internal/usecase/part"
	productuc "github.com/chanspick/PiCom/internal/usecase/product"
	"github.com/chanspick/PiCom/internal/usecase/quote"
	selluc "github.com/chanspick/PiCom/internal/usecase/sellrequest"
	"github.com/chanspick/PiCom/internal/usecase/settlement"
	tradepublisher "github.com/chanspick/PiCom/internal/usecase/trade-publisher"
	useruc "github.com/chanspick/PiCom/internal/usecase/user"
	"github.com/chanspick/PiCom/internal/usecase/validator"
	"github.com/chanspick/PiCom/pkg/config"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/postgresql"
	"github.com/chanspick/PiCom/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	pg, err := postgresql.NewClient(ctx, cfg.PostgresConfig)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_postgresql"})
		return
	}
	defer pg.Close()

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = []string{cfg.RedisConfig.Addrs}
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.DB = cfg.RedisConfig.DB
	rclient := redis.NewClient(log, redisConfig)

	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_redis"})
		return
	}

	// Repositories
	offerRepository := offerrepo.NewRepository(pg, log)
	productRepository := productrepo.NewRepository(pg, log)
	tradeRepository := traderepo.NewRepository(pg, log)
	listingRepository := listingrepo.NewRepository(pg, log)
	partRepository := partrepo.NewRepository(pg, log)
	sellRequestRepository := sellrequestrepo.NewRepository(pg, log)

	// Event stream
	offerReader := offerreader.NewReader(cfg.KafkaConfig, log)
	offerPublisher := offerpublisher.NewPublisher(cfg.KafkaConfig, log)
	defer offerPublisher.Close()
	tradePublisher := tradepublisher.NewPublisher(cfg.KafkaConfig, log)
	defer tradePublisher.Close()

	// Usecases
	validatorUsecase := validator.NewUsecase(offerRepository, productRepository, log)
	matchingUsecase := matching.NewUsecase(offerRepository, log)
	settlementUsecase := settlement.NewUsecase(pg, offerRepository, tradeRepository, productRepository, log)
	quoteUsecase := quote.NewUsecase(productRepository, rclient, cfg.RedisConfig.QuoteChannel, log)
	offerUsecase := offeruc.NewUsecase(offerRepository, productRepository, offerPublisher, log)
	productUsecase := productuc.NewUsecase(productRepository, tradeRepository, offerPublisher, log)
	listingUsecase := listinguc.NewUsecase(pg, listingRepository, tradeRepository, tradePublisher, log)
	partUsecase := partuc.NewUsecase(partRepository, listingRepository, log)
	sellRequestUsecase := selluc.NewUsecase(pg, sellRequestRepository, partRepository, listingRepository, log)
	userUsecase := useruc.NewUsecase(tradeRepository, log)

	// Engine
	engineOptions := app.DefaultEngineOptions()
	engineOptions.Workers = cfg.EngineConfig.Workers
	engineOptions.CleanupInterval = cfg.EngineConfig.CleanupInterval
	engineOptions.CleanupRetention = cfg.EngineConfig.CleanupRetention
	engineOptions.CleanupBatchSize = cfg.EngineConfig.CleanupBatchSize

	engine := app.NewEngineWithOptions(
		offerReader,
		offerRepository,
		validatorUsecase,
		matchingUsecase,
		settlementUsecase,
		quoteUsecase,
		tradePublisher,
		log,
		engineOptions,
	)

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_engine"})
		return
	}

	// HTTP API
	router := api.NewRouter(api.Handlers{
		Offers:       api.NewOfferHandler(offerUsecase),
		Products:     api.NewProductHandler(productUsecase, quoteUsecase),
		Listings:     api.NewListingHandler(listingUsecase),
		Parts:        api.NewPartHandler(partUsecase, listingUsecase),
		SellRequests: api.NewSellRequestHandler(sellRequestUsecase),
		Users:        api.NewUserHandler(userUsecase),
	}, log)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", logger.Field{
			Key:   "addr",
			Value: cfg.HTTPAddr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{Key: "action", Value: "http_listen"})
			sigChan <- syscall.SIGTERM
		}
	}()

	log.Info("Marketplace started successfully")

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_http"})
	}

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_engine"})
	}

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "close_redis_client"})
	}

	log.Info("Marketplace shutdown complete")
}
