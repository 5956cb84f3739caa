package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is owned by exactly one user. Ownership is fixed at creation
// time; every room, contract and document under the property resolves to
// this owner for permission checks.
type Property struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
