// Package mongo provides a MongoDB-backed tracelog.Store. Events are
// inserted into an append-only collection indexed by (trace_id, timestamp)
// so a run's timeline can be read back in order.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brieflyai/cortex/tracelog"
)

const (
	defaultCollection = "agent_trace_events"
	defaultTimeout    = 5 * time.Second
)

// Options configures the Mongo trace store.
type Options struct {
	Client     *mongodriver.Client
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store implements tracelog.Store on top of a MongoDB collection.
type Store struct {
	coll    *mongodriver.Collection
	timeout time.Duration
}

// NewStore builds a Store and ensures the (trace_id, timestamp) index exists.
func NewStore(opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("mongo client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("database name is required")
	}
	collection := opts.Collection
	if collection == "" {
		collection = defaultCollection
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	coll := opts.Client.Database(opts.Database).Collection(collection)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	index := mongodriver.IndexModel{
		Keys: bson.D{{Key: "trace_id", Value: 1}, {Key: "timestamp", Value: 1}},
	}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		return nil, err
	}
	return &Store{coll: coll, timeout: timeout}, nil
}

// Append inserts one event document.
func (s *Store) Append(ctx context.Context, ev tracelog.Event) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.InsertOne(ctx, ev)
	return err
}

// ListByTrace returns the events of one run sorted by timestamp ascending.
func (s *Store) ListByTrace(ctx context.Context, traceID string) ([]tracelog.Event, error) {
	if traceID == "" {
		return nil, errors.New("trace id is required")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"trace_id": traceID}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []tracelog.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
