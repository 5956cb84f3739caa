package utils

import (
	"slices"

	"github.com/google/uuid"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func ContainsUUID(list []uuid.UUID, val uuid.UUID) bool {
	return slices.Contains(list, val)
}
