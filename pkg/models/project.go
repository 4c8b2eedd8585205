// Package models contains domain types for pinframe-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a single uploaded design mockup. It is the root
// aggregate: deleting a project removes all of its pins and, transitively,
// their comments.
type Project struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"image_url"`

	// Intrinsic pixel dimensions of the mockup image. Clients use these to
	// reserve layout space before the image itself has loaded.
	Width  int `json:"width"`
	Height int `json:"height"`

	CreatedAt time.Time `json:"created_at"`

	// Pins is populated on single-project reads; list responses use
	// ProjectSummary instead. Always serialized as an array, never null.
	Pins []Pin `json:"pins"`
}

// ProjectSummary is the list-view form of a project, without nested pins.
type ProjectSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}
