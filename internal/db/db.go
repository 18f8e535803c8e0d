package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"polygon-service/internal/config"
)

// New connects to MongoDB, verifies the connection and ensures the
// indexes the service relies on.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	database := client.Database(cfg.Mongo.Database)

	if err := EnsureIndexes(connectCtx, database); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	return database, nil
}
