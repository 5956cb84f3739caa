package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is attached to a renter, a room, or both. File storage itself
// is handled elsewhere; this record carries the metadata the ownership
// chain needs.
type Document struct {
	ID        uuid.UUID  `json:"id"`
	RenterID  *uuid.UUID `json:"renter_id,omitempty"`
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Path      string     `json:"path"`
	CreatedAt time.Time  `json:"created_at"`
}
