package main

import (
	"os"
	"time"

	"go-job/internals/config"
	"go-job/internals/initializers"
	"go-job/internals/routes"
	"go-job/internals/verification"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := initializers.ConnectToDb(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	codeOpts := verification.Options{
		CodeTTL:        time.Duration(cfg.Verification.CodeExpMinutes) * time.Minute,
		MaxAttempts:    cfg.Verification.MaxAttempts,
		ResendCooldown: time.Duration(cfg.Verification.ResendCooldownS) * time.Second,
	}

	var codes verification.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		codes = verification.NewRedisStore(rdb, codeOpts)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis verification code store")
	} else {
		codes = verification.NewMemoryStore(codeOpts)
		log.Info().Msg("Using in-memory verification code store")
	}

	r := routes.SetupRouter(db, cfg, codes)

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
