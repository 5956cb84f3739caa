package models

import (
	"time"

	"github.com/google/uuid"
)

// Renter may be linked to a room they currently occupy and to a user
// account for self-service access. Both links are optional.
type Renter struct {
	ID        uuid.UUID  `json:"id"`
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
