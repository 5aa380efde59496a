package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/config"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/db"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/logging"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := logging.New(cfg.Env)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
		MaxConns:     cfg.DBMaxConns,
		ConnIdleTime: cfg.DBConnIdleTime,
		ConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer dbpool.Close()

	if err := seed.Apply(ctx, dbpool, logger); err != nil {
		logger.WithError(err).Fatal("seed")
	}
}
