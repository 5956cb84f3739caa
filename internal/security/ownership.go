package security

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// OwnershipResolver walks foreign-key chains from a resource instance to
// the user who ultimately owns it. Every resolution path bottoms out at a
// Property's userId. A missing resource or a broken chain resolves to
// utils.ErrOwnerNotFound; callers fold that into an authorization denial
// so an absent resource is indistinguishable from a forbidden one.
type OwnershipResolver struct {
	store repositories.Store
}

func NewOwnershipResolver(store repositories.Store) *OwnershipResolver {
	return &OwnershipResolver{store: store}
}

// OwnerOf resolves the owning user id for the given resource instance.
func (r *OwnershipResolver) OwnerOf(ctx context.Context, resource Resource, id uuid.UUID) (uuid.UUID, error) {
	switch resource {
	case ResourceProperty:
		return r.ownerOfProperty(ctx, id)
	case ResourceRoom:
		return r.ownerOfRoom(ctx, id)
	case ResourceRenter:
		return r.ownerOfRenter(ctx, id)
	case ResourceContract:
		return r.ownerOfContract(ctx, id)
	case ResourceDocument:
		return r.ownerOfDocument(ctx, id)
	case ResourcePayment:
		return r.ownerOfPayment(ctx, id)
	case ResourceMaintenance:
		return r.ownerOfMaintenanceEvent(ctx, id)
	case ResourceUser:
		// A user account owns itself.
		return id, nil
	default:
		return uuid.Nil, utils.ErrOwnerNotFound
	}
}

func (r *OwnershipResolver) ownerOfProperty(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	property, err := r.store.Properties().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if property == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	return property.UserID, nil
}

func (r *OwnershipResolver) ownerOfRoom(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	room, err := r.store.Rooms().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if room == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	return r.ownerOfProperty(ctx, room.PropertyID)
}

// ownerOfRenter prefers the renter's linked user account; a renter without
// one resolves through their current room to the property owner.
func (r *OwnershipResolver) ownerOfRenter(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	renter, err := r.store.Renters().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if renter == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	if renter.UserID != nil {
		return *renter.UserID, nil
	}
	if renter.RoomID != nil {
		return r.ownerOfRoom(ctx, *renter.RoomID)
	}
	return uuid.Nil, utils.ErrOwnerNotFound
}

func (r *OwnershipResolver) ownerOfContract(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	contract, err := r.store.Contracts().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if contract == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	return r.ownerOfRoom(ctx, contract.RoomID)
}

// HousingOwnerOfRenter resolves the landlord side of a renter: the owner
// of the property housing the renter's room, falling back to the linked
// account for renters without a room. Billing artifacts (payments,
// documents) resolve through this chain so a linked tenant account does
// not shadow the landlord who manages them.
func (r *OwnershipResolver) HousingOwnerOfRenter(ctx context.Context, renterID uuid.UUID) (uuid.UUID, error) {
	renter, err := r.store.Renters().GetByID(ctx, renterID)
	if err != nil {
		return uuid.Nil, err
	}
	if renter == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	if renter.RoomID != nil {
		return r.ownerOfRoom(ctx, *renter.RoomID)
	}
	if renter.UserID != nil {
		return *renter.UserID, nil
	}
	return uuid.Nil, utils.ErrOwnerNotFound
}

// ownerOfDocument resolves through the renter's housing chain when the
// document is attached to a renter, otherwise through the room chain.
func (r *OwnershipResolver) ownerOfDocument(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	document, err := r.store.Documents().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if document == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	if document.RenterID != nil {
		return r.HousingOwnerOfRenter(ctx, *document.RenterID)
	}
	if document.RoomID != nil {
		return r.ownerOfRoom(ctx, *document.RoomID)
	}
	return uuid.Nil, utils.ErrOwnerNotFound
}

func (r *OwnershipResolver) ownerOfPayment(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	payment, err := r.store.Payments().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if payment == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	return r.HousingOwnerOfRenter(ctx, payment.RenterID)
}

func (r *OwnershipResolver) ownerOfMaintenanceEvent(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	event, err := r.store.Maintenance().GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if event == nil {
		return uuid.Nil, utils.ErrOwnerNotFound
	}
	return r.ownerOfRoom(ctx, event.RoomID)
}
