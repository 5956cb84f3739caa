package dtos

import "github.com/google/uuid"

type CreateRoomRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Number     string    `json:"number" validate:"required,min=1"`
	Floor      int       `json:"floor"`
	Price      float64   `json:"price" validate:"required,gt=0"`
}

// UpdateRoomRequest deliberately has no status field: room status is
// driven by contract and maintenance lifecycles only.
type UpdateRoomRequest struct {
	Number *string  `json:"number,omitempty" validate:"omitempty,min=1"`
	Floor  *int     `json:"floor,omitempty"`
	Price  *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}
