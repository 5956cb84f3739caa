package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// svcFixture wires the services over the in-memory store with one owner,
// one property, one AVAILABLE room and one renter seeded.
type svcFixture struct {
	store    *memStore
	notifier *spyNotifier
	eval     *security.PermissionEvaluator

	contracts   *ContractService
	payments    *PaymentService
	maintenance *MaintenanceService
	rooms       *RoomService
	sweeps      *SweepService

	owner    *security.Subject
	admin    *security.Subject
	tenant   *security.Subject
	stranger *security.Subject

	propertyID uuid.UUID
	roomID     uuid.UUID
	renterID   uuid.UUID
}

func newSvcFixture(t *testing.T, releaseAnyActive bool) *svcFixture {
	t.Helper()

	f := &svcFixture{
		store:      newMemStore(),
		notifier:   &spyNotifier{},
		propertyID: uuid.New(),
		roomID:     uuid.New(),
		renterID:   uuid.New(),
	}

	ownerID := uuid.New()
	tenantID := uuid.New()
	f.owner = &security.Subject{ID: ownerID, Role: models.RoleManager}
	f.admin = &security.Subject{ID: uuid.New(), Role: models.RoleAdmin}
	f.tenant = &security.Subject{ID: tenantID, Role: models.RoleUser}
	f.stranger = &security.Subject{ID: uuid.New(), Role: models.RoleManager}

	f.store.properties.byID[f.propertyID] = &models.Property{ID: f.propertyID, UserID: ownerID}
	f.store.rooms.byID[f.roomID] = &models.Room{
		ID:         f.roomID,
		PropertyID: f.propertyID,
		Number:     "101",
		Price:      500,
		Status:     models.RoomStatusAvailable,
	}
	f.store.renters.byID[f.renterID] = &models.Renter{
		ID:     f.renterID,
		RoomID: &f.roomID,
		UserID: &tenantID,
		Name:   "Renter One",
		Email:  "renter@example.com",
	}

	f.eval = security.NewPermissionEvaluator(
		security.NewRoleRegistry(),
		security.NewOwnershipResolver(f.store),
		f.store,
	)
	f.contracts = NewContractService(f.store, f.eval, f.notifier, releaseAnyActive)
	f.payments = NewPaymentService(f.store, f.eval, f.notifier)
	f.maintenance = NewMaintenanceService(f.store, f.eval)
	f.rooms = NewRoomService(f.store, f.eval)
	f.sweeps = NewSweepService(f.store, f.contracts, f.notifier)
	return f
}

func (f *svcFixture) room(t *testing.T) *models.Room {
	t.Helper()
	room := f.store.rooms.byID[f.roomID]
	require.NotNil(t, room)
	return room
}

func (f *svcFixture) createRequest() dtos.CreateContractRequest {
	return dtos.CreateContractRequest{
		RoomID:    f.roomID,
		RenterIDs: []uuid.UUID{f.renterID},
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Amount:    500,
	}
}

// seedActiveContract bypasses the service to install a second contract
// directly, since the service refuses to stack contracts on a room.
func (f *svcFixture) seedActiveContract(roomID uuid.UUID, renterIDs ...uuid.UUID) *models.Contract {
	c := &models.Contract{
		ID:        uuid.New(),
		RoomID:    roomID,
		RenterIDs: renterIDs,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Amount:    500,
		Status:    models.ContractStatusActive,
	}
	f.store.contracts.byID[c.ID] = c
	return c
}

func TestCreateContractOccupiesRoom(t *testing.T) {
	f := newSvcFixture(t, false)

	contract, err := f.contracts.CreateContract(context.Background(), f.owner, f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ContractStatusActive, contract.Status)
	assert.Equal(t, models.RoomStatusOccupied, f.room(t).Status)
	assert.Equal(t, 1, f.notifier.contractCreated)
}

func TestCreateContractOnOccupiedRoomConflicts(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	_, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	_, err = f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeConflict))
	assert.Contains(t, err.Error(), "OCCUPIED")
}

func TestCreateContractMissingRenterHasNoSideEffects(t *testing.T) {
	f := newSvcFixture(t, false)

	req := f.createRequest()
	req.RenterIDs = []uuid.UUID{uuid.New()}

	_, err := f.contracts.CreateContract(context.Background(), f.owner, req)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeNotFound))

	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
	assert.Empty(t, f.store.contracts.byID)
}

func TestCreateContractValidation(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	req := f.createRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err := f.contracts.CreateContract(ctx, f.owner, req)
	assert.True(t, utils.IsCode(err, utils.ErrCodeValidation))

	req = f.createRequest()
	req.Amount = 0
	_, err = f.contracts.CreateContract(ctx, f.owner, req)
	assert.True(t, utils.IsCode(err, utils.ErrCodeValidation))

	req = f.createRequest()
	req.RenterIDs = nil
	_, err = f.contracts.CreateContract(ctx, f.owner, req)
	assert.True(t, utils.IsCode(err, utils.ErrCodeValidation))
}

func TestCreateContractDeniedForNonOwner(t *testing.T) {
	f := newSvcFixture(t, false)

	_, err := f.contracts.CreateContract(context.Background(), f.stranger, f.createRequest())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}

func TestTerminateContractReleasesRoom(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)
	require.Equal(t, models.RoomStatusOccupied, f.room(t).Status)

	terminated, err := f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{
		Reason: "non-payment",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContractStatusTerminated, terminated.Status)
	require.NotNil(t, terminated.TerminationReason)
	assert.Equal(t, "non-payment", *terminated.TerminationReason)
	assert.NotNil(t, terminated.TerminationDate)
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
	assert.Equal(t, 1, f.notifier.contractEnded)
}

func TestTerminateContractRequiresReason(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	_, err = f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{})
	assert.True(t, utils.IsCode(err, utils.ErrCodeValidation))
}

func TestTerminateContractTwiceConflicts(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	_, err = f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{Reason: "moving out"})
	require.NoError(t, err)

	_, err = f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{Reason: "again"})
	assert.True(t, utils.IsCode(err, utils.ErrCodeConflict))
}

// With the shared-renter scoping, an ACTIVE contract with a disjoint
// renter set does not hold the room.
func TestTerminateSharedRenterScoping(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	otherRenter := uuid.New()
	f.store.renters.byID[otherRenter] = &models.Renter{ID: otherRenter, Name: "Renter Two", Email: "two@example.com"}
	f.seedActiveContract(f.roomID, otherRenter)

	_, err = f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{Reason: "moving out"})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}

func TestTerminateKeepsRoomWhenSharedRenterStillActive(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	// Second ACTIVE contract sharing the same renter.
	f.seedActiveContract(f.roomID, f.renterID)

	_, err = f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{Reason: "moving out"})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, f.room(t).Status)
}

// With the wider release check enabled, any other ACTIVE contract holds
// the room regardless of renters.
func TestTerminateAnyActiveContractHoldsRoom(t *testing.T) {
	f := newSvcFixture(t, true)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	otherRenter := uuid.New()
	f.store.renters.byID[otherRenter] = &models.Renter{ID: otherRenter, Name: "Renter Two", Email: "two@example.com"}
	f.seedActiveContract(f.roomID, otherRenter)

	_, err = f.contracts.TerminateContract(ctx, f.owner, contract.ID, dtos.TerminateContractRequest{Reason: "moving out"})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, f.room(t).Status)
}

func TestUpdateContractIntoTerminalReleasesRoom(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	expired := models.ContractStatusExpired
	updated, err := f.contracts.UpdateContract(ctx, f.owner, contract.ID, dtos.UpdateContractRequest{Status: &expired})
	require.NoError(t, err)

	assert.Equal(t, models.ContractStatusExpired, updated.Status)
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}

func TestUpdateContractNonStatusFieldsLeaveRoomAlone(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	amount := 650.0
	_, err = f.contracts.UpdateContract(ctx, f.owner, contract.ID, dtos.UpdateContractRequest{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, f.room(t).Status)
}

func TestDeleteContractWithPaymentsConflicts(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)

	_, err = f.payments.CreatePayment(ctx, f.owner, dtos.CreatePaymentRequest{
		RenterID:   f.renterID,
		ContractID: &contract.ID,
		Amount:     500,
		DueDate:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = f.contracts.DeleteContract(ctx, f.owner, contract.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeConflict))
}

func TestDeleteActiveContractReleasesRoom(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	contract, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)
	require.Equal(t, models.RoomStatusOccupied, f.room(t).Status)

	require.NoError(t, f.contracts.DeleteContract(ctx, f.owner, contract.ID))
	assert.Empty(t, f.store.contracts.byID)
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}
