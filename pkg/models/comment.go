package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single reply in a pin's thread. Comments are never edited or
// individually deleted; they only go away when their parent pin is deleted.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PinID     uuid.UUID `json:"pin_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
