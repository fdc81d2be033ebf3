// Command seed inserts the demo accounts into the Mongo user directory.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/vetcare/central/internal/core/domain"
	mongodb "github.com/vetcare/central/internal/infrastructure/db/mongo"
	"github.com/vetcare/central/internal/infrastructure/memory"
	"github.com/vetcare/central/internal/pkg/config"
	"github.com/vetcare/central/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "vetcare-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	dir := mongodb.NewUserDirectory(db, log)
	if err := dir.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	failed := false
	for _, id := range memory.DemoIdentities() {
		_, err := dir.Create(ctx, mongodb.NewUser{
			Name:     id.Name,
			Email:    id.Email,
			Password: cfg.Policy.DemoPassword,
			Role:     id.Role,
			ImageURL: id.ImageURL,
		})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			log.Info().Str("email", id.Email).Msg("already present")
		case err != nil:
			log.Error().Err(err).Str("email", id.Email).Msg("create user")
			failed = true
		default:
			log.Info().Str("email", id.Email).Str("role", string(id.Role)).Msg("created")
		}
	}
	if failed {
		os.Exit(1)
	}
}
