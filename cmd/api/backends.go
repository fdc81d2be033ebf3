package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetcare/central/internal/api/handler"
	"github.com/vetcare/central/internal/core/ports"
	mongodb "github.com/vetcare/central/internal/infrastructure/db/mongo"
	redisdb "github.com/vetcare/central/internal/infrastructure/db/redis"
	"github.com/vetcare/central/internal/infrastructure/memory"
	"github.com/vetcare/central/internal/pkg/config"
)

// backends holds the storage selected by configuration. Mongo and Redis are
// only dialled when a backend needs them.
type backends struct {
	directory  ports.UserDirectory
	identities ports.IdentityStore
	audit      ports.AuditRepository
	pingers    map[string]handler.Pinger

	mongoClient *mongo.Client
	redisClient *goredis.Client
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{pingers: make(map[string]handler.Pinger)}

	var db *mongo.Database
	if cfg.Backends.Directory == config.BackendMongo || cfg.Backends.Audit == config.BackendMongo {
		client, database, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		b.mongoClient, db = client, database
		b.pingers["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	}

	switch cfg.Backends.Directory {
	case config.BackendMongo:
		dir := mongodb.NewUserDirectory(db, log)
		if err := dir.EnsureIndexes(ctx); err != nil {
			b.close(log)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		b.directory = dir
	default:
		dir, err := memory.NewDemoDirectory(cfg.Policy.DemoPassword, bcrypt.DefaultCost)
		if err != nil {
			b.close(log)
			return nil, err
		}
		b.directory = dir
	}

	switch cfg.Backends.Session {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			b.close(log)
			return nil, fmt.Errorf("redis: %w", err)
		}
		b.redisClient = client
		b.identities = redisdb.NewIdentityStore(client, cfg.Redis.SessionTTL)
		b.pingers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	default:
		b.identities = memory.NewIdentityStore()
	}

	switch cfg.Backends.Audit {
	case config.BackendMongo:
		b.audit = mongodb.NewAuditRepository(db)
	default:
		b.audit = memory.NewAuditLog(0)
	}

	return b, nil
}

func (b *backends) close(log zerolog.Logger) {
	if b.redisClient != nil {
		if err := b.redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	if b.mongoClient != nil {
		if err := b.mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}
