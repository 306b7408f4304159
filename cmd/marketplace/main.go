package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/httpserver"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/search"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/pkg/authclient"
	pkgdb "github.com/Skotchmaster/marketplace/pkg/db"
	"github.com/Skotchmaster/marketplace/pkg/events"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/marketplace/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	if err := gormRepo.Migrate(); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	storeSvc := &service.StoreService{Repo: gormRepo}

	var producer *events.Producer
	if cfg.EventsEnabled() {
		producer = events.NewProducer(cfg.KafkaBrokers)
		storeSvc.Events = producer
		logger.Info("store_events_enabled", "brokers", cfg.KafkaBrokers)
	}

	if cfg.SearchEnabled() {
		es, err := search.NewClient(cfg.ES)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index := search.NewStoreIndex(es, cfg.StoreIndex)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := index.Ping(pingCtx); err != nil {
			logger.Warn("store_search_unreachable", "error", err)
		}
		pingCancel()

		storeSvc.Index = index
		logger.Info("store_search_enabled", "index", index.Index)
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(csrf.Middleware(csrf.DefaultConfig()))

	httpserver.Register(e, &httpserver.Deps{
		StoreHandler:    &httpserver.StoreHTTP{Svc: storeSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: &service.ProductService{Repo: gormRepo}},
		CustomerHandler: &httpserver.CustomerHTTP{Svc: &service.CustomerService{Repo: gormRepo}},
		ReportHandler:   &httpserver.ReportHTTP{Svc: &service.ReportService{Repo: gormRepo}},
		DB:              db,
		JWTSecret:       cfg.JWTAccessSecret,
		AuthClient:      authclient.NewClient(cfg.AuthHTTPURL),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("marketplace_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("marketplace_stopped")
}
