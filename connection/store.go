package connection

import (
	"context"
	"fmt"

	"taskflow/config"
	"taskflow/store"
)

// OpenStore builds the backend named by cfg.StoreDriver behind the circuit
// breaker.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	var backend store.Store
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := MongoConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		mongoStore := store.NewMongoStore(client, cfg.MongoDatabase)
		indexCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()
		if err := mongoStore.EnsureIndexes(indexCtx); err != nil {
			_ = mongoStore.Close(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		backend = mongoStore
	case config.DriverFirestore:
		client, err := FBConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		backend = store.NewFirestoreStore(client)
	case config.DriverMemory:
		backend = store.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return store.NewBreaker(backend, store.BreakerSettings{
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}), nil
}
