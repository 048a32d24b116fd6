package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoConnectTimeout = 10 * time.Second
	sessionCollection   = "sessions"
)

// MongoConfig captures the minimal settings required to establish a MongoDB
// connection.
type MongoConfig struct {
	URI      string
	Database string
}

// MongoStorage keeps the session slot as a single document keyed by the slot
// name in a sessions collection.
type MongoStorage struct {
	client *mongo.Client
	coll   *mongo.Collection
	key    string
}

type sessionDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewMongoStorage establishes a MongoDB client, verifies connectivity with a
// ping, and returns the storage bound to the given key.
func NewMongoStorage(ctx context.Context, cfg MongoConfig, key string) (*MongoStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(sessionCollection)
	return &MongoStorage{client: client, coll: coll, key: key}, nil
}

func (m *MongoStorage) Load(ctx context.Context) ([]byte, error) {
	var doc sessionDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find session: %w", err)
	}
	return doc.Value, nil
}

func (m *MongoStorage) Save(ctx context.Context, value []byte) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": m.key},
		sessionDoc{Key: m.key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo save session: %w", err)
	}
	return nil
}

func (m *MongoStorage) Clear(ctx context.Context) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": m.key}); err != nil {
		return fmt.Errorf("mongo clear session: %w", err)
	}
	return nil
}

func (m *MongoStorage) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (m *MongoStorage) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
