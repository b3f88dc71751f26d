// Package mongo stores users in MongoDB through the official v2 driver.
package mongo

import (
	"context"
	"log/slog"

	"bathroom/config"
	"bathroom/internal/domain/lifecycle"
	"bathroom/internal/errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Conn is a connected MongoDB client scoped to the configured database.
type Conn struct {
	Database *mongo.Database

	client *mongo.Client
}

// Open connects to MongoDB and pings the primary.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Conn, error) {
	if cfg.Mongo == nil || cfg.Mongo.URI == "" {
		return nil, errors.New("mongo store selected but no mongo uri given")
	}

	clientOpts := options.Client().ApplyURI(cfg.Mongo.URI)
	if cfg.Mongo.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.Mongo.ConnectTimeout)
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	logger.Info("Connected to MongoDB", slog.String("database", cfg.Mongo.Database))

	return &Conn{
		Database: client.Database(cfg.Mongo.Database),
		client:   client,
	}, nil
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return errors.WithStack(c.client.Disconnect(ctx))
}
