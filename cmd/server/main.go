package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hotbrew/cafe-order/internal/config"
	"github.com/hotbrew/cafe-order/internal/events"
	"github.com/hotbrew/cafe-order/internal/httpserver"
	"github.com/hotbrew/cafe-order/internal/logging"
	"github.com/hotbrew/cafe-order/internal/repo"
	"github.com/hotbrew/cafe-order/internal/search"
	"github.com/hotbrew/cafe-order/internal/service"
	"github.com/hotbrew/cafe-order/pkg/db"
	loggingmw "github.com/hotbrew/cafe-order/pkg/middleware/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := config.Migrate(database); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	deps := httpserver.Deps{
		DB:        database,
		JWTSecret: []byte(cfg.JWTSecret),
	}

	store := repo.New(database)
	menuSvc := &service.MenuService{Repo: store}
	orderSvc := &service.OrderService{Repo: store}

	deps.Menu = &httpserver.MenuHTTP{Svc: menuSvc, Producer: producer, ESIndex: search.MenuIndex}
	deps.Order = &httpserver.OrderHTTP{Svc: orderSvc, Stats: &service.StatsService{Repo: store}, Producer: producer}
	deps.Inventory = &httpserver.InventoryHTTP{Svc: &service.InventoryService{Repo: store}}
	deps.Auth = &httpserver.AuthHTTP{DB: database, JWTSecret: []byte(cfg.JWTSecret)}

	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch connect failed", "error", err)
			os.Exit(1)
		}
		deps.Menu.ES = esClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
