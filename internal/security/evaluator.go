package security

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// PermissionEvaluator answers authorization questions by evaluating the
// policy rule registered for each (resource, action) pair. It only reads;
// a Deny mentions nothing about whether the target exists.
type PermissionEvaluator struct {
	registry *RoleRegistry
	resolver *OwnershipResolver
	store    repositories.Store
	policies map[Permission]Rule
}

func NewPermissionEvaluator(registry *RoleRegistry, resolver *OwnershipResolver, store repositories.Store) *PermissionEvaluator {
	return &PermissionEvaluator{
		registry: registry,
		resolver: resolver,
		store:    store,
		policies: defaultPolicies(),
	}
}

// defaultPolicies is the policy table. Mutations on owned resources
// require both the role grant and ownership of the target, so a generic
// grant like room:update never reaches into someone else's property.
// Reads and lists are satisfiable by the role grant alone, which is how
// system-wide read roles work. The super role short-circuits everything.
func defaultPolicies() map[Permission]Rule {
	mutate := AnyOf{Super{}, AllOf{RoleGrant{}, Owns{}}}
	read := AnyOf{Super{}, AllOf{RoleGrant{}, Owns{}}}
	list := AnyOf{Super{}, RoleGrant{}}

	policies := map[Permission]Rule{}

	owned := []Resource{
		ResourceProperty, ResourceRoom, ResourceRenter, ResourceContract,
		ResourceDocument, ResourcePayment, ResourceService, ResourceMaintenance,
	}
	for _, res := range owned {
		policies[Permission{res, ActionRead}] = read
		policies[Permission{res, ActionUpdate}] = mutate
		policies[Permission{res, ActionDelete}] = mutate
		policies[Permission{res, ActionList}] = list
	}

	// Create requests carry the id of the parent the new resource hangs
	// off, so ownership is resolved through the parent's chain. A property
	// and an unattached renter have no parent to own yet.
	createVia := func(parent Resource) Rule {
		return AnyOf{Super{}, AllOf{RoleGrant{}, OwnsVia{Resource: parent}}}
	}
	policies[Permission{ResourceProperty, ActionCreate}] = AnyOf{Super{}, RoleGrant{}}
	policies[Permission{ResourceRoom, ActionCreate}] = createVia(ResourceProperty)
	policies[Permission{ResourceRenter, ActionCreate}] = AnyOf{Super{}, RoleGrant{}}
	policies[Permission{ResourceContract, ActionCreate}] = createVia(ResourceRoom)
	policies[Permission{ResourceDocument, ActionCreate}] = AnyOf{Super{}, AllOf{RoleGrant{}, renterLandlord{}}}
	policies[Permission{ResourcePayment, ActionCreate}] = AnyOf{Super{}, AllOf{RoleGrant{}, renterLandlord{}}}
	policies[Permission{ResourceService, ActionCreate}] = AnyOf{Super{}, RoleGrant{}}

	// A renter record answers to two parties: the linked account reads
	// its own record, and the landlord housing the renter administers it.
	renterAdmin := AnyOf{Super{}, AllOf{RoleGrant{}, AnyOf{Owns{}, renterLandlord{}}}}
	policies[Permission{ResourceRenter, ActionRead}] = AnyOf{Super{}, Self{}, AllOf{RoleGrant{}, AnyOf{Owns{}, renterLandlord{}}}}
	policies[Permission{ResourceRenter, ActionUpdate}] = renterAdmin
	policies[Permission{ResourceRenter, ActionDelete}] = renterAdmin
	policies[Permission{ResourcePayment, ActionRead}] = AnyOf{Super{}, AllOf{RoleGrant{}, Owns{}}, paymentSelfRead{}}

	// A renter may report a problem with their own room.
	policies[Permission{ResourceMaintenance, ActionCreate}] = AnyOf{Super{}, AllOf{RoleGrant{}, AnyOf{OwnsVia{Resource: ResourceRoom}, roomOccupant{}}}}

	// User accounts are self-service; only the super role touches others.
	policies[Permission{ResourceUser, ActionRead}] = AnyOf{Super{}, Self{}}
	policies[Permission{ResourceUser, ActionUpdate}] = AnyOf{Super{}, Self{}}
	policies[Permission{ResourceUser, ActionCreate}] = AnyOf{Super{}}
	policies[Permission{ResourceUser, ActionDelete}] = AnyOf{Super{}}
	policies[Permission{ResourceUser, ActionList}] = AnyOf{Super{}}

	// Subscriptions are billing-admin territory.
	for _, act := range allActions {
		policies[Permission{ResourceSubscription, act}] = AnyOf{Super{}}
	}

	return policies
}

// Authorize returns nil when the subject may perform the action, an
// AppError otherwise. A nil subject is unauthenticated; every other
// denial is the same generic authorization failure, missing targets
// included.
func (e *PermissionEvaluator) Authorize(ctx context.Context, subject *Subject, resource Resource, action Action, resourceID *uuid.UUID) error {
	if subject == nil {
		return utils.NewUnauthenticated()
	}

	rule, ok := e.policies[Permission{Resource: resource, Action: action}]
	if !ok {
		return utils.NewAuthorizationDenied()
	}

	allowed, err := rule.Allows(ctx, e, Request{
		Subject:    subject,
		Resource:   resource,
		Action:     action,
		ResourceID: resourceID,
	})
	if err != nil {
		return utils.NewInternal(err)
	}
	if !allowed {
		return utils.NewAuthorizationDenied()
	}
	return nil
}

// PolicyFor exposes the rule registered for a (resource, action) pair so
// policies can be inspected in tests and diagnostics.
func (e *PermissionEvaluator) PolicyFor(resource Resource, action Action) (Rule, bool) {
	rule, ok := e.policies[Permission{Resource: resource, Action: action}]
	return rule, ok
}

/* ------------------------------------------------------------------
   RuleEnv implementation
------------------------------------------------------------------ */

func (e *PermissionEvaluator) IsSuper(role models.RoleType) bool {
	return e.registry.IsSuper(role)
}

func (e *PermissionEvaluator) Grants(role models.RoleType, resource Resource, action Action) bool {
	return e.registry.Grants(role, resource, action)
}

func (e *PermissionEvaluator) OwnerOf(ctx context.Context, resource Resource, id uuid.UUID) (uuid.UUID, error) {
	return e.resolver.OwnerOf(ctx, resource, id)
}

func (e *PermissionEvaluator) RenterLinkedToUser(ctx context.Context, renterID, userID uuid.UUID) (bool, error) {
	renter, err := e.store.Renters().GetByID(ctx, renterID)
	if err != nil {
		return false, err
	}
	return renter != nil && renter.UserID != nil && *renter.UserID == userID, nil
}

/* ------------------------------------------------------------------
   Domain-specific leaf rules
------------------------------------------------------------------ */

// paymentSelfRead allows a renter to read a payment billed to their own
// renter record.
type paymentSelfRead struct{}

func (paymentSelfRead) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	eval, ok := env.(*PermissionEvaluator)
	if !ok || req.ResourceID == nil {
		return false, nil
	}
	payment, err := eval.store.Payments().GetByID(ctx, *req.ResourceID)
	if err != nil {
		return false, err
	}
	if payment == nil {
		return false, nil
	}
	return env.RenterLinkedToUser(ctx, payment.RenterID, req.Subject.ID)
}

func (paymentSelfRead) String() string { return "payment-self-read" }

// renterLandlord allows a caller who owns the property housing the
// target renter. Used where the request id names a renter but the action
// is a landlord's, such as billing.
type renterLandlord struct{}

func (renterLandlord) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	eval, ok := env.(*PermissionEvaluator)
	if !ok || req.ResourceID == nil {
		return false, nil
	}
	owner, err := eval.resolver.HousingOwnerOfRenter(ctx, *req.ResourceID)
	if err != nil {
		if errors.Is(err, utils.ErrOwnerNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner == req.Subject.ID, nil
}

func (renterLandlord) String() string { return "renter-landlord" }

// roomOccupant allows a caller whose linked renter record currently
// occupies the target room.
type roomOccupant struct{}

func (roomOccupant) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	eval, ok := env.(*PermissionEvaluator)
	if !ok || req.ResourceID == nil {
		return false, nil
	}
	renter, err := eval.store.Renters().GetByUserID(ctx, req.Subject.ID)
	if err != nil {
		return false, err
	}
	return renter != nil && renter.RoomID != nil && *renter.RoomID == *req.ResourceID, nil
}

func (roomOccupant) String() string { return "room-occupant" }
