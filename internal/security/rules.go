package security

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// Subject is the authenticated caller, resolved from a token by the
// middleware before any service runs.
type Subject struct {
	ID   uuid.UUID
	Role models.RoleType
}

// Request is one authorization question: may Subject perform Action on
// the Resource instance named by ResourceID. ResourceID is nil for
// collection-level actions such as create and list.
type Request struct {
	Subject    *Subject
	Resource   Resource
	Action     Action
	ResourceID *uuid.UUID
}

// RuleEnv is what a rule may consult while deciding. The evaluator
// provides it; tests substitute fakes.
type RuleEnv interface {
	IsSuper(role models.RoleType) bool
	Grants(role models.RoleType, resource Resource, action Action) bool
	OwnerOf(ctx context.Context, resource Resource, id uuid.UUID) (uuid.UUID, error)
	RenterLinkedToUser(ctx context.Context, renterID, userID uuid.UUID) (bool, error)
}

// Rule is one node of an authorization policy. Rules are plain values
// rather than closures so a policy table can be inspected and printed.
type Rule interface {
	Allows(ctx context.Context, env RuleEnv, req Request) (bool, error)
	String() string
}

/* ------------------------------------------------------------------
   Leaf rules
------------------------------------------------------------------ */

// Super allows when the subject holds the super role.
type Super struct{}

func (Super) Allows(_ context.Context, env RuleEnv, req Request) (bool, error) {
	return env.IsSuper(req.Subject.Role), nil
}

func (Super) String() string { return "super" }

// RoleGrant allows when the subject's role carries the (resource, action)
// permission in the registry.
type RoleGrant struct{}

func (RoleGrant) Allows(_ context.Context, env RuleEnv, req Request) (bool, error) {
	return env.Grants(req.Subject.Role, req.Resource, req.Action), nil
}

func (RoleGrant) String() string { return "role-grant" }

// Owns allows when the subject is the resolved owner of the target
// resource. A resource whose owner cannot be resolved, including one that
// does not exist, denies rather than errs.
type Owns struct{}

func (Owns) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	if req.ResourceID == nil {
		return false, nil
	}
	owner, err := env.OwnerOf(ctx, req.Resource, *req.ResourceID)
	if err != nil {
		if errors.Is(err, utils.ErrOwnerNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner == req.Subject.ID, nil
}

func (Owns) String() string { return "owns" }

// OwnsVia is Owns with an explicit resource kind for the ownership walk.
// Create actions use it: the request carries the id of the parent the new
// resource will hang off (the room for a new contract, the renter for a
// new payment), not an id of the resource kind being created.
type OwnsVia struct {
	Resource Resource
}

func (r OwnsVia) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	if req.ResourceID == nil {
		return false, nil
	}
	owner, err := env.OwnerOf(ctx, r.Resource, *req.ResourceID)
	if err != nil {
		if errors.Is(err, utils.ErrOwnerNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner == req.Subject.ID, nil
}

func (r OwnsVia) String() string { return fmt.Sprintf("owns-via(%s)", r.Resource) }

// Self allows self-service access: on the user resource when the target
// id is the subject's own id, and on the renter resource when the target
// renter's linked user account is the subject.
type Self struct{}

func (Self) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	if req.ResourceID == nil {
		return false, nil
	}
	switch req.Resource {
	case ResourceUser:
		return *req.ResourceID == req.Subject.ID, nil
	case ResourceRenter:
		return env.RenterLinkedToUser(ctx, *req.ResourceID, req.Subject.ID)
	default:
		return false, nil
	}
}

func (Self) String() string { return "self" }

/* ------------------------------------------------------------------
   Combinators
------------------------------------------------------------------ */

// AllOf allows iff every sub-rule allows.
type AllOf []Rule

func (r AllOf) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	for _, sub := range r {
		ok, err := sub.Allows(ctx, env, req)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (r AllOf) String() string { return combine("all", r) }

// AnyOf allows iff at least one sub-rule allows.
type AnyOf []Rule

func (r AnyOf) Allows(ctx context.Context, env RuleEnv, req Request) (bool, error) {
	for _, sub := range r {
		ok, err := sub.Allows(ctx, env, req)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (r AnyOf) String() string { return combine("any", r) }

func combine(op string, rules []Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s(%s)", op, strings.Join(parts, ", "))
}
