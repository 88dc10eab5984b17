package main

import (
	"context"
	"log"
	"os"

	"techmobile/internal/config"
	"techmobile/internal/db"
	tokenrepo "techmobile/internal/repository/token"
	userrepo "techmobile/internal/repository/user"
	"techmobile/internal/seed"
	authsvc "techmobile/internal/service/auth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	authService := authsvc.New(userrepo.NewPostgres(pool, logger), tokenrepo.NewPostgres(pool), logger)
	if err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalf("seed admin: %v", err)
	}

	if err := seed.Apply(ctx, pool, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
