package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Options struct {
	Driver        string // file, mongo or memory
	Path          string
	Profile       string
	MongoURI      string
	MongoDatabase string
}

// Open builds the configured store. The returned close func releases the
// mongo client when one was opened.
func Open(ctx context.Context, opts Options) (Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch opts.Driver {
	case "", "file":
		fs, err := NewFileStore(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	case "mongo":
		if opts.MongoURI == "" {
			return nil, noop, fmt.Errorf("storage driver mongo needs MONGO_URI")
		}
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.MongoURI))
		if err != nil {
			return nil, noop, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, noop, fmt.Errorf("ping mongo: %w", err)
		}
		return NewMongoStore(client.Database(opts.MongoDatabase), opts.Profile), client.Disconnect, nil
	}
	return nil, noop, fmt.Errorf("unknown storage driver %q", opts.Driver)
}
