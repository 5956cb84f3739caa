package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatusType string

const (
	PaymentStatusPending   PaymentStatusType = "PENDING"
	PaymentStatusPaid      PaymentStatusType = "PAID"
	PaymentStatusOverdue   PaymentStatusType = "OVERDUE"
	PaymentStatusCancelled PaymentStatusType = "CANCELLED"
)

// Payment references the renter it bills and, optionally, the contract it
// belongs to. Once PAID it can no longer be deleted or re-marked PAID.
type Payment struct {
	Versioned

	ID         uuid.UUID         `json:"id"`
	RenterID   uuid.UUID         `json:"renter_id"`
	ContractID *uuid.UUID        `json:"contract_id,omitempty"`
	Amount     float64           `json:"amount"`
	DueDate    time.Time         `json:"due_date"`
	Status     PaymentStatusType `json:"status"`
	PaidDate   *time.Time        `json:"paid_date,omitempty"`
	Reference  *string           `json:"reference,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (p *Payment) GetID() string {
	return p.ID.String()
}
