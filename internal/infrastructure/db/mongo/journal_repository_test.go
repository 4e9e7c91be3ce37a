package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lenshive/admin-console/internal/core/domain"
)

func TestJournalDocument_BSONRoundTrip(t *testing.T) {
	recorded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{
		Resource: "product",
		Action:   "set_primary_image",
		EntityID: "7",
		Outcome:  domain.OutcomeSuccess,
		Actor:    "root@lenshive.pk",
	}

	doc := toDocument(entry, recorded)
	if !doc.Timestamp.Equal(recorded) {
		t.Fatalf("missing timestamp must default to the record time, got %s", doc.Timestamp)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["message"]; ok {
		t.Fatalf("empty message must be omitted")
	}
	if m["entity_id"] != "7" {
		t.Fatalf("unexpected entity_id %v", m["entity_id"])
	}

	var back journalDocument
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	got := fromDocument(back)
	if got.Actor != entry.Actor || got.Action != entry.Action || !got.Timestamp.Equal(recorded) {
		t.Fatalf("unexpected entry %+v", got)
	}
}
