// Package realtime maintains per-project subscriber groups over WebSocket
// connections and pushes mutation events to a group's current members.
//
// Delivery is best-effort and at-most-once: events for disconnected or slow
// members are dropped, never queued or retried. Clients that miss an event
// reconcile on their next full project fetch.
package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/pinframe-inc/pinframe-engine/pkg/models"
)

// Event type constants for the realtime WebSocket protocol.
const (
	// Server -> client.
	TypePinCreated   = "pin_created"
	TypePinDeleted   = "pin_deleted"
	TypeCommentAdded = "comment_added"

	// Client -> server.
	TypeJoinProject  = "join_project"
	TypeLeaveProject = "leave_project"
)

// Event is a server-to-client notification about a committed mutation on a
// project. ProjectID names the group the event is delivered to.
type Event struct {
	Type      string    `json:"type"`
	ProjectID uuid.UUID `json:"project_id"`
	Payload   any       `json:"payload"`
}

// PinDeletedPayload carries only the removed pin's identifier.
type PinDeletedPayload struct {
	PinID uuid.UUID `json:"pin_id"`
}

// CommentAddedPayload identifies the owning pin plus the full new comment.
type CommentAddedPayload struct {
	PinID   uuid.UUID      `json:"pin_id"`
	Comment models.Comment `json:"comment"`
}

// NewPinCreated builds the event for a freshly persisted pin. The pin is
// sent whole, with its (empty) comment thread.
func NewPinCreated(pin models.Pin) Event {
	return Event{Type: TypePinCreated, ProjectID: pin.ProjectID, Payload: pin}
}

// NewPinDeleted builds the event for a removed pin.
func NewPinDeleted(projectID, pinID uuid.UUID) Event {
	return Event{Type: TypePinDeleted, ProjectID: projectID, Payload: PinDeletedPayload{PinID: pinID}}
}

// NewCommentAdded builds the event for a new comment on a pin.
func NewCommentAdded(projectID uuid.UUID, comment models.Comment) Event {
	return Event{
		Type:      TypeCommentAdded,
		ProjectID: projectID,
		Payload:   CommentAddedPayload{PinID: comment.PinID, Comment: comment},
	}
}

// Broadcaster delivers an event to every current subscriber of the event's
// project group. Implementations must treat delivery as best-effort: an
// error means the event could not be handed off at all, not that every
// member received it.
type Broadcaster interface {
	Broadcast(ctx context.Context, event Event) error
}

// clientMessage is the envelope for client -> server control messages.
type clientMessage struct {
	Type      string    `json:"type"`
	ProjectID uuid.UUID `json:"project_id"`
}
