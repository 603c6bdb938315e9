package document

import (
	"time"

	"github.com/newmandigital/catalog/internal/adapters/outbox"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutboxDocument is a pending event. The payload is kept as the JSON text
// the broker will receive.
type OutboxDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EventName  string             `bson:"event_name"`
	EntityName string             `bson:"entity_name"`
	EventData  string             `bson:"event_data"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d OutboxDocument) GetID() string { return d.ID.Hex() }

func NewOutboxDocument(entry outbox.Entry) OutboxDocument {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return OutboxDocument{
		EventName:  entry.EventName,
		EntityName: entry.EntityName,
		EventData:  string(entry.EventData),
		CreatedAt:  createdAt,
	}
}

func (d OutboxDocument) ToEntry() outbox.Entry {
	return outbox.Entry{
		ID:         d.GetID(),
		EventName:  d.EventName,
		EntityName: d.EntityName,
		EventData:  []byte(d.EventData),
		CreatedAt:  d.CreatedAt,
	}
}
