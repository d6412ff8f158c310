package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const analysesCollection = "analyses"

// MongoStore persists analyses in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the given database.
// The connection is verified with a ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(analysesCollection),
	}, nil
}

// Insert stores a new analysis.
func (s *MongoStore) Insert(ctx context.Context, a *Analysis) error {
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// Get returns the analysis with the given ID, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (*Analysis, error) {
	var a Analysis
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find analysis: %w", err)
	}
	return &a, nil
}

// List returns summaries of the most recent analyses, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"graph": 0, "artifacts": 0, "options": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []Summary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode analyses: %w", err)
	}
	return summaries, nil
}

// Delete removes an analysis.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
