package dtos

import "github.com/google/uuid"

type CreateDocumentRequest struct {
	RenterID *uuid.UUID `json:"renter_id,omitempty"`
	RoomID   *uuid.UUID `json:"room_id,omitempty"`
	Name     string     `json:"name" validate:"required,min=1"`
	Type     string     `json:"type" validate:"required,min=1"`
	Path     string     `json:"path" validate:"required,min=1"`
}
