package activity

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "activity"

// MongoFeed keeps the feed in a MongoDB collection.
type MongoFeed struct {
	collection *mongo.Collection
}

var _ Feed = (*MongoFeed)(nil)

func NewMongoFeed(db *mongo.Database) *MongoFeed {
	return &MongoFeed{collection: db.Collection(collectionName)}
}

func (f *MongoFeed) Record(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := f.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (f *MongoFeed) Recent(ctx context.Context, limit int) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := f.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
