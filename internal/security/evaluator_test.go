package security

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

/* ------------------------------------------------------------------
   In-memory store fakes. Each fake embeds the repository interface and
   overrides only what the resolver and evaluator call.
------------------------------------------------------------------ */

type fakeStore struct {
	repositories.Store
	properties  fakePropertyRepo
	rooms       fakeRoomRepo
	renters     fakeRenterRepo
	contracts   fakeContractRepo
	payments    fakePaymentRepo
	maintenance fakeMaintenanceRepo
	documents   fakeDocumentRepo
}

func (s *fakeStore) Properties() repositories.PropertyRepository         { return &s.properties }
func (s *fakeStore) Rooms() repositories.RoomRepository                  { return &s.rooms }
func (s *fakeStore) Renters() repositories.RenterRepository              { return &s.renters }
func (s *fakeStore) Contracts() repositories.ContractRepository          { return &s.contracts }
func (s *fakeStore) Payments() repositories.PaymentRepository            { return &s.payments }
func (s *fakeStore) Maintenance() repositories.MaintenanceEventRepository { return &s.maintenance }
func (s *fakeStore) Documents() repositories.DocumentRepository          { return &s.documents }

type fakePropertyRepo struct {
	repositories.PropertyRepository
	byID map[uuid.UUID]*models.Property
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return r.byID[id], nil
}

type fakeRoomRepo struct {
	repositories.RoomRepository
	byID map[uuid.UUID]*models.Room
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	return r.byID[id], nil
}

type fakeRenterRepo struct {
	repositories.RenterRepository
	byID map[uuid.UUID]*models.Renter
}

func (r *fakeRenterRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Renter, error) {
	return r.byID[id], nil
}

func (r *fakeRenterRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Renter, error) {
	for _, renter := range r.byID {
		if renter.UserID != nil && *renter.UserID == userID {
			return renter, nil
		}
	}
	return nil, nil
}

type fakeContractRepo struct {
	repositories.ContractRepository
	byID map[uuid.UUID]*models.Contract
}

func (r *fakeContractRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Contract, error) {
	return r.byID[id], nil
}

type fakePaymentRepo struct {
	repositories.PaymentRepository
	byID map[uuid.UUID]*models.Payment
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	return r.byID[id], nil
}

type fakeMaintenanceRepo struct {
	repositories.MaintenanceEventRepository
	byID map[uuid.UUID]*models.MaintenanceEvent
}

func (r *fakeMaintenanceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.MaintenanceEvent, error) {
	return r.byID[id], nil
}

type fakeDocumentRepo struct {
	repositories.DocumentRepository
	byID map[uuid.UUID]*models.Document
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Document, error) {
	return r.byID[id], nil
}

/* ------------------------------------------------------------------
   Fixture: owner's property P containing room R, renter linked to a
   separate tenant account, a contract and a payment hanging off them.
------------------------------------------------------------------ */

type fixture struct {
	store *fakeStore
	eval  *PermissionEvaluator

	ownerID    uuid.UUID
	tenantID   uuid.UUID
	propertyID uuid.UUID
	roomID     uuid.UUID
	renterID   uuid.UUID
	contractID uuid.UUID
	paymentID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ownerID:    uuid.New(),
		tenantID:   uuid.New(),
		propertyID: uuid.New(),
		roomID:     uuid.New(),
		renterID:   uuid.New(),
		contractID: uuid.New(),
		paymentID:  uuid.New(),
	}

	f.store = &fakeStore{
		properties: fakePropertyRepo{byID: map[uuid.UUID]*models.Property{
			f.propertyID: {ID: f.propertyID, UserID: f.ownerID},
		}},
		rooms: fakeRoomRepo{byID: map[uuid.UUID]*models.Room{
			f.roomID: {ID: f.roomID, PropertyID: f.propertyID},
		}},
		renters: fakeRenterRepo{byID: map[uuid.UUID]*models.Renter{
			f.renterID: {ID: f.renterID, RoomID: &f.roomID, UserID: &f.tenantID},
		}},
		contracts: fakeContractRepo{byID: map[uuid.UUID]*models.Contract{
			f.contractID: {ID: f.contractID, RoomID: f.roomID, RenterIDs: []uuid.UUID{f.renterID}},
		}},
		payments: fakePaymentRepo{byID: map[uuid.UUID]*models.Payment{
			f.paymentID: {ID: f.paymentID, RenterID: f.renterID},
		}},
		maintenance: fakeMaintenanceRepo{byID: map[uuid.UUID]*models.MaintenanceEvent{}},
		documents:   fakeDocumentRepo{byID: map[uuid.UUID]*models.Document{}},
	}

	registry := NewRoleRegistry()
	resolver := NewOwnershipResolver(f.store)
	f.eval = NewPermissionEvaluator(registry, resolver, f.store)
	return f
}

func subject(id uuid.UUID, role models.RoleType) *Subject {
	return &Subject{ID: id, Role: role}
}

/* ------------------------------------------------------------------
   OwnershipResolver
------------------------------------------------------------------ */

func TestOwnerOfWalksChains(t *testing.T) {
	f := newFixture(t)
	resolver := NewOwnershipResolver(f.store)
	ctx := context.Background()

	for _, tc := range []struct {
		resource Resource
		id       uuid.UUID
		owner    uuid.UUID
	}{
		{ResourceProperty, f.propertyID, f.ownerID},
		{ResourceRoom, f.roomID, f.ownerID},
		{ResourceContract, f.contractID, f.ownerID},
		// The renter has a linked account, so the account wins over the
		// room chain.
		{ResourceRenter, f.renterID, f.tenantID},
		// Billing resolves through the renter's housing, not the linked
		// account.
		{ResourcePayment, f.paymentID, f.ownerID},
	} {
		owner, err := resolver.OwnerOf(ctx, tc.resource, tc.id)
		require.NoError(t, err, tc.resource)
		assert.Equal(t, tc.owner, owner, tc.resource)
	}
}

func TestOwnerOfRenterFallsBackToRoomChain(t *testing.T) {
	f := newFixture(t)
	unlinked := uuid.New()
	f.store.renters.byID[unlinked] = &models.Renter{ID: unlinked, RoomID: &f.roomID}

	owner, err := NewOwnershipResolver(f.store).OwnerOf(context.Background(), ResourceRenter, unlinked)
	require.NoError(t, err)
	assert.Equal(t, f.ownerID, owner)
}

func TestOwnerOfMissingResource(t *testing.T) {
	f := newFixture(t)
	_, err := NewOwnershipResolver(f.store).OwnerOf(context.Background(), ResourceRoom, uuid.New())
	assert.ErrorIs(t, err, utils.ErrOwnerNotFound)
}

/* ------------------------------------------------------------------
   PermissionEvaluator
------------------------------------------------------------------ */

func TestAuthorizeNilSubjectIsUnauthenticated(t *testing.T) {
	f := newFixture(t)
	err := f.eval.Authorize(context.Background(), nil, ResourceRoom, ActionRead, &f.roomID)
	assert.True(t, utils.IsCode(err, utils.ErrCodeUnauthenticated))
}

func TestAuthorizeSuperRoleAlwaysAllowed(t *testing.T) {
	f := newFixture(t)
	admin := subject(uuid.New(), models.RoleAdmin)
	ctx := context.Background()

	assert.NoError(t, f.eval.Authorize(ctx, admin, ResourceRoom, ActionUpdate, &f.roomID))
	assert.NoError(t, f.eval.Authorize(ctx, admin, ResourceSubscription, ActionDelete, nil))

	// Even a target that does not exist.
	missing := uuid.New()
	assert.NoError(t, f.eval.Authorize(ctx, admin, ResourceContract, ActionDelete, &missing))
}

func TestAuthorizeOwnerMayMutateOwnResources(t *testing.T) {
	f := newFixture(t)
	owner := subject(f.ownerID, models.RoleManager)
	ctx := context.Background()

	assert.NoError(t, f.eval.Authorize(ctx, owner, ResourceRoom, ActionUpdate, &f.roomID))
	assert.NoError(t, f.eval.Authorize(ctx, owner, ResourceContract, ActionDelete, &f.contractID))
	assert.NoError(t, f.eval.Authorize(ctx, owner, ResourceContract, ActionCreate, &f.roomID))
}

// A generic room:update grant does not reach rooms in properties the
// caller does not own.
func TestAuthorizeGrantWithoutOwnershipIsDenied(t *testing.T) {
	f := newFixture(t)
	stranger := subject(uuid.New(), models.RoleUser)

	err := f.eval.Authorize(context.Background(), stranger, ResourceRoom, ActionUpdate, &f.roomID)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}

func TestAuthorizeOtherManagerIsDenied(t *testing.T) {
	f := newFixture(t)
	other := subject(uuid.New(), models.RoleManager)

	err := f.eval.Authorize(context.Background(), other, ResourceContract, ActionUpdate, &f.contractID)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}

// A missing target renders exactly like a forbidden one.
func TestAuthorizeMissingTargetRendersAsDenial(t *testing.T) {
	f := newFixture(t)
	owner := subject(f.ownerID, models.RoleManager)
	missing := uuid.New()

	err := f.eval.Authorize(context.Background(), owner, ResourceRoom, ActionUpdate, &missing)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))

	denied := f.eval.Authorize(context.Background(), subject(uuid.New(), models.RoleUser), ResourceRoom, ActionUpdate, &f.roomID)
	assert.Equal(t, denied.Error(), err.Error())
}

func TestAuthorizeRenterSelfRead(t *testing.T) {
	f := newFixture(t)
	tenant := subject(f.tenantID, models.RoleUser)
	ctx := context.Background()

	// Own renter record and own payment, but not someone else's.
	assert.NoError(t, f.eval.Authorize(ctx, tenant, ResourceRenter, ActionRead, &f.renterID))
	assert.NoError(t, f.eval.Authorize(ctx, tenant, ResourcePayment, ActionRead, &f.paymentID))

	otherRenter := uuid.New()
	f.store.renters.byID[otherRenter] = &models.Renter{ID: otherRenter}
	err := f.eval.Authorize(ctx, tenant, ResourceRenter, ActionUpdate, &otherRenter)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}

func TestAuthorizeOccupantMayReportMaintenance(t *testing.T) {
	f := newFixture(t)
	tenant := subject(f.tenantID, models.RoleUser)

	assert.NoError(t, f.eval.Authorize(context.Background(), tenant, ResourceMaintenance, ActionCreate, &f.roomID))

	otherRoom := uuid.New()
	f.store.rooms.byID[otherRoom] = &models.Room{ID: otherRoom, PropertyID: f.propertyID}
	err := f.eval.Authorize(context.Background(), tenant, ResourceMaintenance, ActionCreate, &otherRoom)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}

func TestAuthorizeUserResourceIsSelfService(t *testing.T) {
	f := newFixture(t)
	me := uuid.New()
	other := uuid.New()
	ctx := context.Background()

	assert.NoError(t, f.eval.Authorize(ctx, subject(me, models.RoleUser), ResourceUser, ActionRead, &me))
	err := f.eval.Authorize(ctx, subject(me, models.RoleUser), ResourceUser, ActionRead, &other)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}

/* ------------------------------------------------------------------
   Rule values
------------------------------------------------------------------ */

func TestRuleStringsAreInspectable(t *testing.T) {
	f := newFixture(t)
	rule, ok := f.eval.PolicyFor(ResourceRoom, ActionUpdate)
	require.True(t, ok)
	assert.Equal(t, "any(super, all(role-grant, owns))", rule.String())

	create, ok := f.eval.PolicyFor(ResourceContract, ActionCreate)
	require.True(t, ok)
	assert.Equal(t, "any(super, all(role-grant, owns-via(room)))", create.String())
}

func TestCombinatorShortCircuit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := Request{
		Subject:    subject(f.ownerID, models.RoleManager),
		Resource:   ResourceRoom,
		Action:     ActionUpdate,
		ResourceID: &f.roomID,
	}

	ok, err := AllOf{RoleGrant{}, Owns{}}.Allows(ctx, f.eval, req)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AllOf{Super{}, Owns{}}.Allows(ctx, f.eval, req)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = AnyOf{Super{}, Owns{}}.Allows(ctx, f.eval, req)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AnyOf{}.Allows(ctx, f.eval, req)
	require.NoError(t, err)
	assert.False(t, ok)
}
