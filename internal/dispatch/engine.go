// Package dispatch turns one submitted event into zero or more
// persisted and delivered notifications. Persistence is authoritative:
// every audience member gets a stored row first, then a best-effort
// live push.
package dispatch

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/insyd-labs/notification-service/internal/classifier"
	"github.com/insyd-labs/notification-service/internal/models"
	"github.com/insyd-labs/notification-service/internal/repositories"
)

// Publisher delivers a notification to the recipient's live sessions.
// Delivery is fire-and-forget; implementations never report errors to
// the dispatcher.
type Publisher interface {
	Publish(userID uint, notification models.Notification)
}

// RecipientFailure records one audience member whose notification could
// not be persisted.
type RecipientFailure struct {
	UserID uint   `json:"user_id"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Result reports the outcome of one dispatch: the IDs of every stored
// notification and, separately, the recipients that failed. A dispatch
// with failures for some recipients still succeeds for the rest.
type Result struct {
	CreatedIDs []uint             `json:"created_ids"`
	Failures   []RecipientFailure `json:"failures,omitempty"`
}

// Engine orchestrates classification, persistence and live delivery.
type Engine struct {
	// mu serializes dispatches. One event is processed fully, across its
	// whole audience, before the next is accepted; that alone guarantees
	// per-recipient creation order matches event arrival order.
	mu            sync.Mutex
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	journal       repositories.EventLogRepository
	publisher     Publisher
}

// NewEngine creates a dispatch engine. A nil journal disables event
// journaling.
func NewEngine(users repositories.UserRepository, notifications repositories.NotificationRepository, journal repositories.EventLogRepository, publisher Publisher) *Engine {
	if journal == nil {
		journal = repositories.NoopEventLogRepository{}
	}
	return &Engine{
		users:         users,
		notifications: notifications,
		journal:       journal,
		publisher:     publisher,
	}
}

// Dispatch classifies the event, persists one notification per audience
// member and pushes each stored notification to the recipient's live
// sessions.
//
// Classification and actor-resolution errors abort before any write.
// Per-recipient store errors are isolated: one recipient failing does
// not roll back or stop the others, it is reported in Result.Failures.
func (e *Engine) Dispatch(ctx context.Context, event models.Event) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	actor, err := e.users.GetUserByID(ctx, event.ActorID)
	if err != nil {
		return nil, err
	}

	users, err := e.users.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	classified, err := classifier.Classify(event, *actor, users)
	if err != nil {
		return nil, err
	}

	// The journal is an audit trail, never load-bearing.
	if err := e.journal.Append(ctx, event); err != nil {
		log.Printf("dispatch: event journal append failed: %v", err)
	}

	result := &Result{CreatedIDs: make([]uint, 0, len(classified.Audience))}
	for _, recipientID := range classified.Audience {
		notification := models.Notification{
			UserID:  recipientID,
			Type:    event.Type,
			Content: classified.Content,
			Status:  models.StatusUnread,
		}
		if err := e.notifications.CreateNotification(ctx, &notification); err != nil {
			result.Failures = append(result.Failures, RecipientFailure{
				UserID: recipientID,
				Reason: failureReason(err),
				Err:    err,
			})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, notification.ID)
		e.publisher.Publish(recipientID, notification)
	}

	return result, nil
}

// failureReason maps a store error to a stable, caller-safe label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrUnknownUser):
		return "unknown recipient"
	case errors.Is(err, models.ErrStoreUnavailable):
		return "store unavailable"
	default:
		return "store error"
	}
}
