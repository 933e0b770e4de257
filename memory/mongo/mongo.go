// Package mongo provides a MongoDB-backed core.MemoryStore. Records are
// stored one document per takeaway, indexed by user, and recalled newest
// first via a text filter.
package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brieflyai/cortex/core"
)

const (
	defaultCollection  = "agent_memory"
	defaultTimeout     = 5 * time.Second
	defaultDigestLimit = 10
)

// Options configures the Mongo memory store.
type Options struct {
	Client      *mongodriver.Client
	Database    string
	Collection  string
	Timeout     time.Duration
	DigestLimit int
}

// Store implements core.MemoryStore on top of a MongoDB collection.
type Store struct {
	coll    *mongodriver.Collection
	timeout time.Duration
	limit   int
}

type memoryDocument struct {
	ID        string         `bson:"_id"`
	UserID    string         `bson:"user_id"`
	TraceID   string         `bson:"trace_id,omitempty"`
	Content   string         `bson:"content"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}

// NewStore builds a Store and ensures the (user_id, created_at) index exists.
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
	limit := opts.DigestLimit
	if limit <= 0 {
		limit = defaultDigestLimit
	}
	coll := opts.Client.Database(opts.Database).Collection(collection)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	index := mongodriver.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		return nil, err
	}
	return &Store{coll: coll, timeout: timeout, limit: limit}, nil
}

// Recall returns a bulleted digest of the user's newest records whose content
// matches any word of the query (case-insensitive). Empty digest means
// "nothing relevant".
func (s *Store) Recall(ctx context.Context, userID, query string) (string, error) {
	if userID == "" {
		return "", nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if terms := strings.Fields(query); len(terms) > 0 {
		patterns := make(bson.A, 0, len(terms))
		for _, t := range terms {
			patterns = append(patterns, bson.M{"content": bson.M{
				"$regex":   regexEscape(t),
				"$options": "i",
			}})
		}
		filter["$or"] = patterns
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(s.limit))
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return "", err
	}
	defer cursor.Close(ctx)

	var docs []memoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, d := range docs {
		sb.WriteString("- ")
		sb.WriteString(d.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Save inserts one record document. Missing ID and CreatedAt are filled in.
func (s *Store) Save(ctx context.Context, rec core.MemoryRecord) error {
	if rec.Content == "" {
		return errors.New("memory record content is required")
	}
	if rec.ID == "" {
		rec.ID = core.NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, memoryDocument{
		ID:        rec.ID,
		UserID:    rec.UserID,
		TraceID:   rec.TraceID,
		Content:   rec.Content,
		Metadata:  rec.Metadata,
		CreatedAt: rec.CreatedAt,
	})
	return err
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

// regexEscape quotes regex metacharacters so query words match literally.
func regexEscape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
