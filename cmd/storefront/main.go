package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/adapters/cache"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/app"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/config"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("load config")
	}
	if cfg.IsDev() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Fatal().Err(err).Msg("connect database")
	}

	var kv domain.KVCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			zlog.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("connect redis")
		}
		defer rc.Close()
		kv = rc
	} else {
		kv = cache.NewMemory()
	}

	application := app.NewApp(db, kv, cfg)
	if err := application.MigrateAndSeed(); err != nil {
		zlog.Fatal().Err(err).Msg("migrate and seed")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info().Str("port", cfg.Port).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}
