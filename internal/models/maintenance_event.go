package models

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatusType string

const (
	MaintenanceStatusPending    MaintenanceStatusType = "PENDING"
	MaintenanceStatusInProgress MaintenanceStatusType = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatusType = "COMPLETED"
	MaintenanceStatusCancelled  MaintenanceStatusType = "CANCELLED"
)

type MaintenanceEvent struct {
	ID          uuid.UUID             `json:"id"`
	RoomID      uuid.UUID             `json:"room_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      MaintenanceStatusType `json:"status"`

	ReportedDate time.Time `json:"reported_date"`
	// CompletedDate is set only when status is COMPLETED.
	CompletedDate *time.Time `json:"completed_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
