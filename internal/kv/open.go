package kv

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Options select and locate a backend. Only the fields of the chosen backend
// are read.
type Options struct {
	Backend string

	DynamoDB DynamoDBAPI
	Table    string

	RedisAddress  string
	RedisPassword string
	RedisPrefix   string

	MongoURI string
	MongoDB  string

	DatabaseURL string
}

// Open connects the backend named by o.Backend. The returned func releases
// its connections.
func Open(ctx context.Context, o Options) (Store, func(), error) {
	noop := func() {}

	switch o.Backend {
	case BackendMemory:
		return NewMemory(), noop, nil

	case BackendDynamoDB:
		if o.DynamoDB == nil {
			return nil, noop, fmt.Errorf("dynamodb backend needs a client")
		}
		return NewDynamo(o.DynamoDB, o.Table), noop, nil

	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     o.RedisAddress,
			Password: o.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedis(rdb, o.RedisPrefix), func() { _ = rdb.Close() }, nil

	case BackendMongo:
		client, err := ConnectMongo(ctx, o.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		return NewMongo(client, o.MongoDB, "kv"), func() { _ = client.Disconnect(context.Background()) }, nil

	case BackendPostgres:
		pool, err := pgxpool.New(ctx, o.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		pg := NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return pg, pool.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", o.Backend)
}
