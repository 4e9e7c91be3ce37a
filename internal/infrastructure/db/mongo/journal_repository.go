package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

const journalCollection = "console_journal"

// journalDocument is the stored shape of a domain.JournalEntry.
type journalDocument struct {
	Resource   string    `bson:"resource"`
	Action     string    `bson:"action"`
	EntityID   string    `bson:"entity_id,omitempty"`
	Outcome    string    `bson:"outcome"`
	Message    string    `bson:"message,omitempty"`
	Actor      string    `bson:"actor,omitempty"`
	Timestamp  time.Time `bson:"timestamp"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// JournalRepository implements ports.JournalRepository.
type JournalRepository struct {
	db  *mongo.Database
	now func() time.Time
}

func NewJournalRepository(db *mongo.Database) ports.JournalRepository {
	return &JournalRepository{db: db, now: time.Now}
}

// EnsureIndexes creates the index the activity feed sorts on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(journalCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "entity_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("journal indexes: %w", err)
	}
	return nil
}

func (r *JournalRepository) Insert(ctx context.Context, entry *domain.JournalEntry) error {
	_, err := r.db.Collection(journalCollection).InsertOne(ctx, toDocument(entry, r.now()))
	return err
}

// Recent returns the newest entries first.
func (r *JournalRepository) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.db.Collection(journalCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("journal find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []journalDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("journal decode: %w", err)
	}

	out := make([]domain.JournalEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

func toDocument(e *domain.JournalEntry, recordedAt time.Time) journalDocument {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = recordedAt
	}
	return journalDocument{
		Resource:   e.Resource,
		Action:     e.Action,
		EntityID:   e.EntityID,
		Outcome:    e.Outcome,
		Message:    e.Message,
		Actor:      e.Actor,
		Timestamp:  ts.UTC(),
		RecordedAt: recordedAt.UTC(),
	}
}

func fromDocument(d journalDocument) domain.JournalEntry {
	return domain.JournalEntry{
		Resource:  d.Resource,
		Action:    d.Action,
		EntityID:  d.EntityID,
		Outcome:   d.Outcome,
		Message:   d.Message,
		Actor:     d.Actor,
		Timestamp: d.Timestamp,
	}
}
