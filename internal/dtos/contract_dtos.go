package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

type CreateContractRequest struct {
	RoomID    uuid.UUID                  `json:"room_id" validate:"required"`
	RenterIDs []uuid.UUID                `json:"renter_ids" validate:"required,min=1,dive,required"`
	StartDate time.Time                  `json:"start_date" validate:"required"`
	EndDate   time.Time                  `json:"end_date" validate:"required,gtefield=StartDate"`
	Amount    float64                    `json:"amount" validate:"required,gt=0"`
	Status    *models.ContractStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING ACTIVE"`
}

type UpdateContractRequest struct {
	RenterIDs *[]uuid.UUID               `json:"renter_ids,omitempty" validate:"omitempty,min=1,dive,required"`
	StartDate *time.Time                 `json:"start_date,omitempty"`
	EndDate   *time.Time                 `json:"end_date,omitempty"`
	Amount    *float64                   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Status    *models.ContractStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING ACTIVE EXPIRED TERMINATED"`
}

type TerminateContractRequest struct {
	Reason          string     `json:"reason" validate:"required,min=1"`
	TerminationDate *time.Time `json:"termination_date,omitempty"`
}
