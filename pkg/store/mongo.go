package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/masonry/pkg/grid"
)

// Defaults for OpenMongo.
const (
	DefaultMongoDatabase   = "masonry"
	DefaultMongoCollection = "layouts"
)

// MongoStore persists layouts as documents keyed by layout ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and uses the layouts collection of database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping mongo: %w", err)
	}
	s := &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(DefaultMongoCollection),
	}
	if _, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: create index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) Save(ctx context.Context, l grid.Layout) (grid.Layout, error) {
	l, err := prepare(l)
	if err != nil {
		return grid.Layout{}, err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return grid.Layout{}, fmt.Errorf("store: save layout %s: %w", l.ID, err)
	}
	return l, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (grid.Layout, error) {
	if err := checkID(id); err != nil {
		return grid.Layout{}, err
	}
	var l grid.Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return grid.Layout{}, notFound(id)
	}
	if err != nil {
		return grid.Layout{}, fmt.Errorf("store: get layout %s: %w", id, err)
	}
	return l, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: list layouts: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var l grid.Layout
		if err := cur.Decode(&l); err != nil {
			return nil, fmt.Errorf("store: decode layout: %w", err)
		}
		out = append(out, Summarize(l))
	}
	return out, cur.Err()
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: delete layout %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
