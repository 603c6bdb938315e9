package document

import (
	"testing"
	"time"

	"github.com/newmandigital/catalog/internal/adapters/outbox"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOutboxDocument_ToEntry(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := NewOutboxDocument(outbox.Entry{
		EventName:  "product.created",
		EntityName: "product",
		EventData:  []byte(`{"name":"Widget"}`),
		CreatedAt:  createdAt,
	})
	doc.ID = primitive.NewObjectID()

	entry := doc.ToEntry()
	if entry.ID != doc.ID.Hex() {
		t.Errorf("id: got %q, want %q", entry.ID, doc.ID.Hex())
	}
	if entry.EventName != "product.created" || entry.EntityName != "product" {
		t.Errorf("unexpected names %q/%q", entry.EventName, entry.EntityName)
	}
	if string(entry.EventData) != `{"name":"Widget"}` {
		t.Errorf("payload: got %s", entry.EventData)
	}
	if !entry.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at: got %v", entry.CreatedAt)
	}
}

func TestNewOutboxDocument_DefaultsCreatedAt(t *testing.T) {
	before := time.Now().UTC()
	doc := NewOutboxDocument(outbox.Entry{EventName: "product.deleted"})

	if doc.CreatedAt.Before(before) {
		t.Fatalf("expected created_at to be set, got %v", doc.CreatedAt)
	}
	if !doc.ID.IsZero() {
		t.Fatal("id should be left for mongo to assign")
	}
}
