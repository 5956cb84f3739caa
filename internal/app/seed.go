package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// Fixed IDs so seeding is idempotent and integration tests can reference
// the seeded rows directly.
const (
	SeedAdminUserID    = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa1"
	SeedManagerUserID  = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa2"
	SeedTenantUserID   = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa3"
	SeedPropertyID     = "bbbbbbbb-bbbb-4bbb-bbbb-bbbbbbbbbbb1"
	SeedRoomOccupiedID = "cccccccc-cccc-4ccc-cccc-ccccccccccc1"
	SeedRoomVacantID   = "cccccccc-cccc-4ccc-cccc-ccccccccccc2"
	SeedRenterID       = "dddddddd-dddd-4ddd-dddd-ddddddddddd1"
	SeedContractID     = "eeeeeeee-eeee-4eee-eeee-eeeeeeeeeee1"
	SeedPaymentID      = "ffffffff-ffff-4fff-ffff-fffffffffff1"

	seedPassword = "password123"
)

// SeedTestData populates the database with a small, fully linked data set:
// three users (one per role), a property with two rooms, a renter with a
// linked tenant account, an active contract on the occupied room, and one
// pending payment. The sentinel property is the idempotency check.
func SeedTestData(ctx context.Context, store repositories.Store) error {
	propertyID := uuid.MustParse(SeedPropertyID)

	if existing, err := store.Properties().GetByID(ctx, propertyID); err != nil {
		return fmt.Errorf("failed to check for sentinel property: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	hash, err := utils.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	managerID := uuid.MustParse(SeedManagerUserID)
	tenantID := uuid.MustParse(SeedTenantUserID)

	users := []*models.User{
		{
			ID:           uuid.MustParse(SeedAdminUserID),
			Email:        "admin@example.com",
			Name:         "Seed Admin",
			PasswordHash: hash,
			Roles:        []models.RoleType{models.RoleUser, models.RoleAdmin},
		},
		{
			ID:           managerID,
			Email:        "manager@example.com",
			Name:         "Seed Manager",
			PasswordHash: hash,
			Roles:        []models.RoleType{models.RoleUser, models.RoleManager},
		},
		{
			ID:           tenantID,
			Email:        "tenant@example.com",
			Name:         "Seed Tenant",
			PasswordHash: hash,
			Roles:        []models.RoleType{models.RoleUser},
		},
	}
	for _, u := range users {
		if err := store.Users().Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	property := &models.Property{
		ID:      propertyID,
		UserID:  managerID,
		Name:    "Seed Apartments",
		Address: "1 Seed Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
	}
	if err := store.Properties().Create(ctx, property); err != nil {
		return fmt.Errorf("seed property: %w", err)
	}

	occupiedRoomID := uuid.MustParse(SeedRoomOccupiedID)
	rooms := []*models.Room{
		{
			ID:         occupiedRoomID,
			PropertyID: propertyID,
			Number:     "101",
			Floor:      1,
			Price:      950,
			Status:     models.RoomStatusOccupied,
		},
		{
			ID:         uuid.MustParse(SeedRoomVacantID),
			PropertyID: propertyID,
			Number:     "102",
			Floor:      1,
			Price:      875,
			Status:     models.RoomStatusAvailable,
		},
	}
	for _, rm := range rooms {
		if err := store.Rooms().Create(ctx, rm); err != nil {
			return fmt.Errorf("seed room %s: %w", rm.Number, err)
		}
	}

	renterID := uuid.MustParse(SeedRenterID)
	renter := &models.Renter{
		ID:     renterID,
		RoomID: &occupiedRoomID,
		UserID: &tenantID,
		Name:   "Seed Tenant",
		Email:  "tenant@example.com",
		Phone:  "+15555550100",
	}
	if err := store.Renters().Create(ctx, renter); err != nil {
		return fmt.Errorf("seed renter: %w", err)
	}

	now := time.Now().UTC()
	contractID := uuid.MustParse(SeedContractID)
	contract := &models.Contract{
		ID:        contractID,
		RoomID:    occupiedRoomID,
		RenterIDs: []uuid.UUID{renterID},
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 11, 0),
		Amount:    950,
		Status:    models.ContractStatusActive,
	}
	if err := store.Contracts().Create(ctx, contract); err != nil {
		return fmt.Errorf("seed contract: %w", err)
	}

	payment := &models.Payment{
		ID:         uuid.MustParse(SeedPaymentID),
		RenterID:   renterID,
		ContractID: &contractID,
		Amount:     950,
		DueDate:    now.AddDate(0, 0, 14),
		Status:     models.PaymentStatusPending,
	}
	if err := store.Payments().Create(ctx, payment); err != nil {
		return fmt.Errorf("seed payment: %w", err)
	}

	utils.Logger.Info("Seeding completed successfully.")
	return nil
}
