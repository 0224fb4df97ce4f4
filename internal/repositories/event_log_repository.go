package repositories

import (
	"context"
	"time"

	"github.com/insyd-labs/notification-service/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// EventLogRepository journals accepted events. The journal is an audit
// trail only: appends are best-effort and a journal failure never fails
// a dispatch.
type EventLogRepository interface {
	Append(ctx context.Context, event models.Event) error
}

type mongoEventLogRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoEventLogRepository creates an EventLogRepository writing to
// the "events" collection of the given database.
func NewMongoEventLogRepository(db *mongo.Database, timeout time.Duration) EventLogRepository {
	return &mongoEventLogRepository{
		collection: db.Collection("events"),
		timeout:    timeout,
	}
}

// Append records one event.
func (r *mongoEventLogRepository) Append(ctx context.Context, event models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	record := models.EventRecord{
		Type:       event.Type,
		ActorID:    event.ActorID,
		TargetID:   event.TargetID,
		Comment:    event.Payload.Comment,
		Title:      event.Payload.Title,
		ReceivedAt: time.Now().UTC(),
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// NoopEventLogRepository discards events. Used when no Mongo instance
// is configured and in tests.
type NoopEventLogRepository struct{}

// Append discards the event.
func (NoopEventLogRepository) Append(context.Context, models.Event) error { return nil }
