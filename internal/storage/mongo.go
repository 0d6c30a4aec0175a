package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps entries in a collection, one document per key. Profile
// namespaces the keys so several portals can share a database.
type MongoStore struct {
	coll    *mongo.Collection
	profile string
}

type entry struct {
	ID      string `bson:"_id"`
	Profile string `bson:"profile"`
	Key     string `bson:"key"`
	Value   string `bson:"value"`
}

func NewMongoStore(db *mongo.Database, profile string) *MongoStore {
	return &MongoStore{coll: db.Collection("client_state"), profile: profile}
}

func (m *MongoStore) id(key string) string {
	return m.profile + ":" + key
}

func (m *MongoStore) Get(ctx context.Context, key string) (string, error) {
	var e entry
	err := m.coll.FindOne(ctx, bson.M{"_id": m.id(key)}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return e.Value, nil
}

func (m *MongoStore) Set(ctx context.Context, key, value string) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": m.id(key)},
		bson.M{"$set": bson.M{"profile": m.profile, "key": key, "value": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": m.id(key)}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
