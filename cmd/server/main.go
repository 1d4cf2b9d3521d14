package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ecomshop/backend/internal/config"
	"github.com/ecomshop/backend/internal/db"
	"github.com/ecomshop/backend/internal/events"
	"github.com/ecomshop/backend/internal/httpserver"
	"github.com/ecomshop/backend/internal/logging"
	loggingmw "github.com/ecomshop/backend/internal/middleware/logging"
	"github.com/ecomshop/backend/internal/repo"
	"github.com/ecomshop/backend/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	gormRepo := &repo.GormRepo{DB: gdb}

	authSvc := &service.AuthService{
		Repo:      gormRepo,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Producer:  producer,
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo, Producer: producer}
	cartSvc := &service.CartService{Repo: gormRepo, Producer: producer}

	seedCtx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
	err = authSvc.EnsureAdmin(seedCtx, cfg.AdminUsername, cfg.AdminPassword)
	cancel()
	if err != nil {
		log.Fatalf("admin provisioning: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		log.Printf("producer close: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("server stopped")
}
