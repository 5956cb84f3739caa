package dtos

import "github.com/google/uuid"

type CreateRenterRequest struct {
	Name   string     `json:"name" validate:"required,min=1"`
	Email  string     `json:"email" validate:"required,email"`
	Phone  string     `json:"phone,omitempty" validate:"omitempty,e164"`
	RoomID *uuid.UUID `json:"room_id,omitempty"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

type UpdateRenterRequest struct {
	Name   *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string    `json:"phone,omitempty" validate:"omitempty,e164"`
	RoomID *uuid.UUID `json:"room_id,omitempty"`
}
