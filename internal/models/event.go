package models

import "time"

// Event types the classifier understands.
const (
	EventLike    = "like"
	EventComment = "comment"
	EventFollow  = "follow"
	EventPost    = "post"
)

// Event is an externally submitted action record. Events are ephemeral:
// they drive notification creation and are journaled for audit, but are
// never load-bearing after dispatch.
type Event struct {
	Type     string       `json:"type"`
	ActorID  uint         `json:"actor_id"`
	TargetID uint         `json:"target_id,omitempty"`
	Payload  EventPayload `json:"payload,omitempty"`
}

// EventPayload carries type-specific data: the comment text for
// "comment" events, the post title for "post" events.
type EventPayload struct {
	Comment string `json:"comment,omitempty"`
	Title   string `json:"title,omitempty"`
}

// SubmitEventRequest is the event ingestion payload.
type SubmitEventRequest struct {
	Type     string `json:"type" validate:"required,oneof=like comment follow post"`
	ActorID  uint   `json:"actor_id" validate:"required"`
	TargetID uint   `json:"target_id,omitempty"`
	Comment  string `json:"comment,omitempty"`
	Title    string `json:"title,omitempty"`
}

// ToEvent converts the request into a domain event.
func (r SubmitEventRequest) ToEvent() Event {
	return Event{
		Type:     r.Type,
		ActorID:  r.ActorID,
		TargetID: r.TargetID,
		Payload: EventPayload{
			Comment: r.Comment,
			Title:   r.Title,
		},
	}
}

// EventRecord is the journaled form of an accepted event (MongoDB).
type EventRecord struct {
	Type       string    `bson:"type"`
	ActorID    uint      `bson:"actor_id"`
	TargetID   uint      `bson:"target_id,omitempty"`
	Comment    string    `bson:"comment,omitempty"`
	Title      string    `bson:"title,omitempty"`
	ReceivedAt time.Time `bson:"received_at"`
}
