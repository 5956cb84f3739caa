package dtos

import (
	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

type CreateMaintenanceEventRequest struct {
	RoomID      uuid.UUID                     `json:"room_id" validate:"required"`
	Title       string                        `json:"title" validate:"required,min=1"`
	Description string                        `json:"description,omitempty"`
	Status      *models.MaintenanceStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS"`
}

type UpdateMaintenanceEventRequest struct {
	Title       *string                       `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string                       `json:"description,omitempty"`
	Status      *models.MaintenanceStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}
