package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatusType string

const (
	RoomStatusAvailable   RoomStatusType = "AVAILABLE"
	RoomStatusOccupied    RoomStatusType = "OCCUPIED"
	RoomStatusReserved    RoomStatusType = "RESERVED"
	RoomStatusMaintenance RoomStatusType = "MAINTENANCE"
)

// Room belongs to exactly one property. Status OCCUPIED must track the
// existence of an ACTIVE contract, and MAINTENANCE the existence of an
// IN_PROGRESS maintenance event; only the lifecycle services move the
// status for those two reasons.
type Room struct {
	Versioned

	ID         uuid.UUID      `json:"id"`
	PropertyID uuid.UUID      `json:"property_id"`
	Number     string         `json:"number"`
	Floor      int            `json:"floor"`
	Price      float64        `json:"price"`
	Status     RoomStatusType `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (r *Room) GetID() string {
	return r.ID.String()
}
