package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"egstify/internal/assistant"
	"egstify/internal/assistant/granite"
	"egstify/internal/config"
	einvoicemock "egstify/internal/einvoice/mock"
	"egstify/internal/gstportal/mastergst"
	"egstify/internal/handler"
	"egstify/internal/logger"
	"egstify/internal/news/newsapi"
	"egstify/internal/port"
	"egstify/internal/repository/memory"
	"egstify/internal/repository/postgres"
	"egstify/internal/repository/sqlite"
	"egstify/internal/router"
	"egstify/internal/service"
	s3storage "egstify/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logger.Init(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize ledger storage
	store, closeStore, err := openLedgerStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize external collaborators
	verifier := einvoicemock.NewVerifier(cfg.IRN.Latency)
	if cfg.Verifier.Provider == "mastergst" {
		verifier = mastergst.NewClient(&cfg.Verifier)
	}

	var taxAssistant port.TaxAssistant = assistant.Rules{}
	if cfg.Assistant.Provider == "granite" {
		taxAssistant = granite.NewClient(&cfg.Assistant)
	}

	var newsSource port.NewsSource
	if cfg.News.APIKey != "" {
		newsSource = newsapi.NewClient(&cfg.News)
	}

	var archive port.ObjectStorage
	if cfg.S3.Enabled() {
		archive, err = s3storage.NewArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	}

	// Initialize services
	ledgerSvc := service.NewLedgerService(store)
	invoiceSvc := service.NewInvoiceService(service.InvoiceDeps{
		Issuer: einvoicemock.NewIssuer(einvoicemock.IssuerConfig{
			SellerGSTIN: cfg.IRN.SellerGSTIN,
			Latency:     cfg.IRN.Latency,
			FailureRate: cfg.IRN.FailureRate,
			QRBaseURL:   cfg.IRN.QRBaseURL,
		}),
		Matcher:       einvoicemock.NewMatcher(cfg.Reconcile.Latency, cfg.Reconcile.MatchRatio),
		Verifier:      verifier,
		Ledger:        ledgerSvc,
		Storage:       archive,
		PresignExpiry: cfg.S3.PresignExpiry,
	})
	assistantSvc := service.NewAssistantService(taxAssistant, cfg.Assistant.Provider)
	newsSvc := service.NewNewsService(newsSource, cfg.News.Limit)

	// Setup router
	r := router.Setup(
		cfg.CORS,
		handler.NewHealthHandler(store),
		handler.NewGSTHandler(),
		handler.NewInvoiceHandler(invoiceSvc),
		handler.NewLedgerHandler(ledgerSvc),
		handler.NewAssistantHandler(assistantSvc),
		handler.NewNewsHandler(newsSvc),
	)

	server := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 20 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("ledger_driver", cfg.Ledger.Driver),
			zap.String("assistant", cfg.Assistant.Provider),
			zap.String("verifier", cfg.Verifier.Provider),
			zap.Bool("archive_enabled", archive != nil),
			zap.Bool("live_news", newsSource != nil),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func openLedgerStore(ctx context.Context, cfg *config.Config) (port.LedgerStore, func(), error) {
	switch cfg.Ledger.Driver {
	case "memory":
		return memory.NewLedgerRepo(), func() {}, nil
	case "postgres":
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewLedgerRepo(db, cfg.Ledger.ID), func() { db.Close() }, nil
	default:
		db, err := sqlite.NewDB(ctx, cfg.Ledger.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
		}
		return sqlite.NewLedgerRepo(db, cfg.Ledger.ID), func() { db.Close() }, nil
	}
}
