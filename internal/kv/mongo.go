package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo stores each key as one document whose _id is the key. SetMany uses a
// multi-document transaction and so needs a replica set or sharded cluster.
type Mongo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	nowFunc func() time.Time
}

// NewMongo returns a Store backed by database.collection.
func NewMongo(client *mongo.Client, database, collection string) *Mongo {
	return &Mongo{
		client:  client,
		coll:    client.Database(database).Collection(collection),
		nowFunc: time.Now,
	}
}

// ConnectMongo opens a client and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	return m.upsert(ctx, key, value)
}

func (m *Mongo) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	_, err := m.coll.InsertOne(ctx, mongoDoc{Key: key, Value: string(value), UpdatedAt: m.nowFunc().UTC()})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo insert %s: %w", key, err)
	}
	return true, nil
}

func (m *Mongo) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongo start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		for k, v := range entries {
			if err := m.upsert(txCtx, k, v); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("mongo transaction: %w", err)
	}
	return nil
}

func (m *Mongo) upsert(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": string(value), "updated_at": m.nowFunc().UTC()}}
	_, err := m.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}
