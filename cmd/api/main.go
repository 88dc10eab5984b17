package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"techmobile/internal/config"
	"techmobile/internal/db"
	"techmobile/internal/httpserver"
	productrepo "techmobile/internal/repository/product"
	subscriberrepo "techmobile/internal/repository/subscriber"
	tokenrepo "techmobile/internal/repository/token"
	userrepo "techmobile/internal/repository/user"
	authsvc "techmobile/internal/service/auth"
	catalogsvc "techmobile/internal/service/catalog"
	subscriptionsvc "techmobile/internal/service/subscription"
	"techmobile/internal/upload"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	authService := authsvc.New(userRepo, tokenRepo, logger)
	subscriberRepo := subscriberrepo.NewPostgres(dbpool, logger)
	subscriptionService := subscriptionsvc.New(subscriberRepo)

	if err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalf("seed admin: %v", err)
	}

	uploads, err := upload.NewSaver(cfg.UploadDir, cfg.FileURLHost)
	if err != nil {
		logger.Fatalf("init uploads: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:   catalogService,
		AuthSvc:      authService,
		SubscribeSvc: subscriptionService,
		Uploads:      uploads,
		UploadDir:    cfg.UploadDir,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
