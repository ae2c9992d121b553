package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lvieira/catalogo-api/internal/config"
	"github.com/lvieira/catalogo-api/internal/events"
	"github.com/lvieira/catalogo-api/internal/httpserver"
	"github.com/lvieira/catalogo-api/internal/logging"
	authmw "github.com/lvieira/catalogo-api/internal/middleware/auth"
	loggingmw "github.com/lvieira/catalogo-api/internal/middleware/logging"
	"github.com/lvieira/catalogo-api/internal/repo"
	"github.com/lvieira/catalogo-api/internal/search"
	"github.com/lvieira/catalogo-api/internal/service"
)

const productIndex = "products"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "catalogo-api")
	slog.SetDefault(logger)

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(cfg.KAFKA_ADDRESS)
	}

	gormRepo := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	var searchHandler *httpserver.SearchHTTP
	productHandler := &httpserver.ProductHTTP{
		Svc:      catalogSvc,
		Producer: producer,
		Index:    productIndex,
	}
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(search.ClientConfig{
			URL:      cfg.ES_URL,
			User:     cfg.ES_USER,
			Password: cfg.ES_PASSWORD,
		})
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		productHandler.ES = esClient
		searchHandler = &httpserver.SearchHTTP{ES: esClient, Index: productIndex}
	}

	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: gormRepo, JWTSecret: []byte(cfg.JWT_SECRET)},
			Producer: producer,
		},
		ProductHandler:  productHandler,
		CategoryHandler: &httpserver.CategoryHTTP{Svc: catalogSvc, Producer: producer},
		SearchHandler:   searchHandler,
		AuthMW:          authmw.New([]byte(cfg.JWT_SECRET)),
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.SERVER_PORT),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
