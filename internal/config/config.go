// Package config loads the service configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/imrishuroy/go-mouse-storefront/internal/aws"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

// Config holds everything cmd/api and cmd/worker read from the environment.
type Config struct {
	Port     string
	RunLocal bool

	// StoreBackend is one of the kv.Backend* names.
	StoreBackend  string
	KVTable       string
	RedisAddress  string
	RedisPassword string
	MongoURI      string
	MongoDB       string
	DatabaseURL   string

	OrdersQueueURL   string
	MetricsNamespace string

	OwnerTokenHash string
	CORSOrigins    []string

	SeedSampleProducts bool
	IdempotencyTTL     time.Duration
}

// Load reads a .env file when one is present, then the environment.
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("[config] error loading .env file: %v", err)
		} else {
			log.Printf("[config] .env file loaded")
		}
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		RunLocal: getBool("RUN_LOCAL", false),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", kv.BackendMemory)),
		KVTable:       getEnv("KV_TABLE", "storefront-kv"),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDB:       getEnv("MONGO_DB", "storefront"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		OrdersQueueURL:   getEnv("ORDERS_QUEUE_URL", ""),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "MouseStorefront"),

		OwnerTokenHash: getEnv("OWNER_TOKEN_HASH", ""),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		SeedSampleProducts: getBool("SEED_SAMPLE_PRODUCTS", true),
		IdempotencyTTL:     getDuration("IDEMPOTENCY_TTL", 48*time.Hour),
	}
}

// StoreOptions returns the kv.Open options for the configured backend.
// dynamo may be nil unless the backend is DynamoDB.
func (c *Config) StoreOptions(dynamo aws.DynamoDBAPI) kv.Options {
	return kv.Options{
		Backend:       c.StoreBackend,
		DynamoDB:      dynamo,
		Table:         c.KVTable,
		RedisAddress:  c.RedisAddress,
		RedisPassword: c.RedisPassword,
		RedisPrefix:   "storefront:",
		MongoURI:      c.MongoURI,
		MongoDB:       c.MongoDB,
		DatabaseURL:   c.DatabaseURL,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] %s=%q is not a positive duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
