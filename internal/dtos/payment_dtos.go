package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	RenterID   uuid.UUID  `json:"renter_id" validate:"required"`
	ContractID *uuid.UUID `json:"contract_id,omitempty"`
	Amount     float64    `json:"amount" validate:"required,gt=0"`
	DueDate    time.Time  `json:"due_date" validate:"required"`
}

type UpdatePaymentRequest struct {
	ContractID *uuid.UUID `json:"contract_id,omitempty"`
	Amount     *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

type MarkPaymentPaidRequest struct {
	PaidDate  *time.Time `json:"paid_date,omitempty"`
	Reference *string    `json:"reference,omitempty" validate:"omitempty,min=1"`
}
