package models

import (
	"time"

	"github.com/google/uuid"
)

// Pin is a located discussion anchor on a project's mockup image.
//
// Coordinates are normalized fractions of the image dimensions, in [0, 1].
// The pin carries only its parent's id, never a parent object reference, so
// the serialized graph is always a one-directional tree
// (Project -> Pins -> Comments) with no cycles.
type Pin struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Content   string    `json:"content"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`

	// Comments is the pin's reply thread, chronological, append-only.
	// Always serialized as an array, never null.
	Comments []Comment `json:"comments"`
}
