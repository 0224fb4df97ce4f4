// Package classifier maps incoming events to a rendered notification
// message and a resolved audience. Classification is pure over its
// inputs and performs no I/O; the dispatcher supplies the actor row and
// a snapshot of existing users.
package classifier

import (
	"fmt"

	"github.com/insyd-labs/notification-service/internal/models"
)

// Result is the outcome of classifying one event: the message every
// audience member receives and the set of recipient user IDs.
type Result struct {
	Content  string
	Audience []uint
}

// Classify validates the event against its type's requirements, renders
// the notification content, and resolves the audience.
//
// Targeted types (like, comment, follow) address exactly the target
// user. A post event broadcasts to every user except the actor; users
// who have in-app notifications disabled are excluded from any
// audience. An empty audience is a valid result, not an error.
func Classify(event models.Event, actor models.User, users []models.User) (Result, error) {
	if err := validate(event); err != nil {
		return Result{}, err
	}

	content := render(event, actor)

	if event.Type == models.EventPost {
		return Result{Content: content, Audience: broadcastAudience(event.ActorID, users)}, nil
	}
	return Result{Content: content, Audience: targetAudience(event.TargetID, users)}, nil
}

// validate checks type-required fields. It never touches the store.
func validate(event models.Event) error {
	switch event.Type {
	case models.EventLike, models.EventFollow:
		if event.TargetID == 0 {
			return fmt.Errorf("%w: %s event requires target_id", models.ErrInvalidEvent, event.Type)
		}
	case models.EventComment:
		if event.TargetID == 0 {
			return fmt.Errorf("%w: comment event requires target_id", models.ErrInvalidEvent)
		}
		if event.Payload.Comment == "" {
			return fmt.Errorf("%w: comment event requires comment text", models.ErrInvalidEvent)
		}
	case models.EventPost:
		if event.Payload.Title == "" {
			return fmt.Errorf("%w: post event requires a title", models.ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unrecognized type %q", models.ErrInvalidEvent, event.Type)
	}
	return nil
}

// render produces the immutable notification content for an event.
func render(event models.Event, actor models.User) string {
	switch event.Type {
	case models.EventLike:
		return fmt.Sprintf("%s liked your post", actor.Username)
	case models.EventComment:
		return fmt.Sprintf("%s commented: %q", actor.Username, event.Payload.Comment)
	case models.EventFollow:
		return fmt.Sprintf("%s started following you", actor.Username)
	case models.EventPost:
		return fmt.Sprintf("%s posted: %q", actor.Username, event.Payload.Title)
	}
	return ""
}

// targetAudience resolves a targeted event to its single recipient.
// A target with in-app notifications disabled yields an empty audience.
// An unknown target is still addressed: the store rejects the insert
// with ErrUnknownUser, which the dispatcher reports per recipient.
func targetAudience(targetID uint, users []models.User) []uint {
	for _, u := range users {
		if u.ID == targetID && !u.NotificationsEnabled {
			return nil
		}
	}
	return []uint{targetID}
}

// broadcastAudience resolves a post event to every user except the
// actor. Follower-based fan-out would slot in here if the follow
// relation were modeled.
func broadcastAudience(actorID uint, users []models.User) []uint {
	audience := make([]uint, 0, len(users))
	for _, u := range users {
		if u.ID == actorID || !u.NotificationsEnabled {
			continue
		}
		audience = append(audience, u.ID)
	}
	return audience
}
