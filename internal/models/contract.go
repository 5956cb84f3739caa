package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatusType string

const (
	ContractStatusPending    ContractStatusType = "PENDING"
	ContractStatusActive     ContractStatusType = "ACTIVE"
	ContractStatusExpired    ContractStatusType = "EXPIRED"
	ContractStatusTerminated ContractStatusType = "TERMINATED"
)

// IsTerminal reports whether the status is one a contract can never
// leave.
func (s ContractStatusType) IsTerminal() bool {
	return s == ContractStatusExpired || s == ContractStatusTerminated
}

type Contract struct {
	Versioned

	ID        uuid.UUID          `json:"id"`
	RoomID    uuid.UUID          `json:"room_id"`
	RenterIDs []uuid.UUID        `json:"renter_ids"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Amount    float64            `json:"amount"`
	Status    ContractStatusType `json:"status"`

	TerminationReason *string    `json:"termination_reason,omitempty"`
	TerminationDate   *time.Time `json:"termination_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Contract) GetID() string {
	return c.ID.String()
}

// SharesRenterWith reports whether the two contracts have at least one
// renter in common.
func (c *Contract) SharesRenterWith(other *Contract) bool {
	for _, a := range c.RenterIDs {
		for _, b := range other.RenterIDs {
			if a == b {
				return true
			}
		}
	}
	return false
}
