package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alphafusion/internal/config"
	"alphafusion/internal/database"
	"alphafusion/internal/feed"
	"alphafusion/internal/logger"
	"alphafusion/internal/oracle"
	"alphafusion/internal/provider"
	"alphafusion/internal/scoring"
	"alphafusion/internal/seed"
	"alphafusion/internal/sentiment"
	"alphafusion/internal/services"
	"alphafusion/internal/validator"
)

// @title           AlphaFusion API
// @version         1.0
// @description     AlphaFusion scores Indian equities on news sentiment, technicals and fundamentals and keeps a session bucket of holdings.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token from POST /sessions.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 10 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	validator.Register()

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := dbManager.DB()
	catalog, err := seed.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	seeded, err := seed.Apply(ctx, db, catalog)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Infow("Catalog seeded", "stocks", seeded.Stocks, "trends", seeded.Trends)

	httpClient := &http.Client{Timeout: appConfig.RequestTimeout}
	market, err := provider.New(appConfig.MarketFeed, httpClient, uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}

	primary, fallback := sentiment.DefaultSources(httpClient)
	newsScorer := sentiment.NewScorer(
		sentiment.Reweight(primary, appConfig.Scoring.Sentiment.Sources),
		sentiment.Reweight(fallback, appConfig.Scoring.Sentiment.FallbackSources),
		sentiment.NewLexicon(),
	).WithNeutralWeight(appConfig.Scoring.Sentiment.NeutralWeight)

	scorer := scoring.NewScorer(appConfig.Scoring)
	stockService := services.NewStockService(db)
	bucketService := services.NewBucketService(db, scorer, appConfig.SessionTTL)
	sentimentService := services.NewSentimentService(ctx, db, newsScorer, appConfig.SentimentWorkers)
	hub := feed.NewHub(appConfig.CORSOrigins)
	defer hub.Close()

	deps := routerDeps{
		config:           appConfig,
		stockService:     stockService,
		bucketService:    bucketService,
		trendService:     services.NewTrendService(db, scorer),
		analyticsService: services.NewAnalyticsService(stockService, sentimentService, market),
		sentimentService: sentimentService,
		auditService:     services.NewAuditService(db),
		hub:              hub,
	}

	orc := oracle.NewOracle(stockService, market, hub, bucketService, appConfig.LiveTickInterval)
	oracleDone := make(chan struct{})
	go func() {
		defer close(oracleDone)
		orc.Start(ctx)
	}()

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting AlphaFusion server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-oracleDone
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("server shutdown error: %v", err)
	}
	<-oracleDone
	sentimentService.WaitRefresh()
	return nil
}
