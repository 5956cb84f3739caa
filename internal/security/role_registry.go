package security

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
)

// Resource is a category of entity subject to permission checks.
type Resource string

const (
	ResourceProperty     Resource = "property"
	ResourceRoom         Resource = "room"
	ResourceRenter       Resource = "renter"
	ResourceContract     Resource = "contract"
	ResourceDocument     Resource = "document"
	ResourcePayment      Resource = "payment"
	ResourceService      Resource = "service"
	ResourceMaintenance  Resource = "maintenance"
	ResourceUser         Resource = "user"
	ResourceSubscription Resource = "subscription"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Permission is a single (resource, action) grant.
type Permission struct {
	Resource Resource
	Action   Action
}

func (p Permission) String() string {
	return string(p.Resource) + ":" + string(p.Action)
}

// ParsePermission parses a "resource:action" pair.
func ParsePermission(s string) (Permission, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, fmt.Errorf("invalid permission %q, want resource:action", s)
	}
	return Permission{Resource: Resource(parts[0]), Action: Action(parts[1])}, nil
}

// RoleRegistry maps role names to the permission sets they carry. The
// registry is assembled once at startup; there is no dynamic mutation.
// ADMIN is the super role and grants every permission unconditionally.
type RoleRegistry struct {
	superRole models.RoleType
	grants    map[models.RoleType]map[Permission]struct{}
}

var allResources = []Resource{
	ResourceProperty, ResourceRoom, ResourceRenter, ResourceContract,
	ResourceDocument, ResourcePayment, ResourceService, ResourceMaintenance,
	ResourceUser, ResourceSubscription,
}

var allActions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionList}

func defaultGrants() map[models.RoleType][]Permission {
	grants := map[models.RoleType][]Permission{}

	// MANAGER gets full access over the resources a landlord manages.
	// Ownership gating in the evaluator still scopes mutations to the
	// manager's own properties.
	managed := []Resource{
		ResourceProperty, ResourceRoom, ResourceRenter, ResourceContract,
		ResourceDocument, ResourcePayment, ResourceService, ResourceMaintenance,
	}
	for _, res := range managed {
		for _, act := range allActions {
			grants[models.RoleManager] = append(grants[models.RoleManager], Permission{res, act})
		}
	}

	grants[models.RoleUser] = []Permission{
		{ResourceProperty, ActionRead}, {ResourceProperty, ActionList},
		{ResourceRoom, ActionRead}, {ResourceRoom, ActionList},
		{ResourceRoom, ActionUpdate},
		{ResourceRenter, ActionRead},
		{ResourceContract, ActionRead},
		{ResourcePayment, ActionRead}, {ResourcePayment, ActionList},
		{ResourceDocument, ActionRead},
		{ResourceMaintenance, ActionCreate}, {ResourceMaintenance, ActionRead},
	}

	return grants
}

// NewRoleRegistry builds the registry from the built-in defaults.
func NewRoleRegistry() *RoleRegistry {
	return newRegistry(defaultGrants())
}

// NewRoleRegistryFromJSON builds the registry from the defaults, then
// replaces the permission set of every role named in the JSON document.
// The document maps role name to a list of "resource:action" strings:
//
//	{"USER": ["room:read", "contract:read"]}
func NewRoleRegistryFromJSON(raw string) (*RoleRegistry, error) {
	var overrides map[string][]string
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("parsing role permissions: %w", err)
	}

	grants := defaultGrants()
	for roleName, perms := range overrides {
		role := models.RoleType(roleName)
		parsed := make([]Permission, 0, len(perms))
		for _, s := range perms {
			p, err := ParsePermission(s)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, p)
		}
		grants[role] = parsed
	}
	return newRegistry(grants), nil
}

func newRegistry(grants map[models.RoleType][]Permission) *RoleRegistry {
	reg := &RoleRegistry{
		superRole: models.RoleAdmin,
		grants:    map[models.RoleType]map[Permission]struct{}{},
	}
	for role, perms := range grants {
		set := map[Permission]struct{}{}
		for _, p := range perms {
			set[p] = struct{}{}
		}
		reg.grants[role] = set
	}
	return reg
}

// IsSuper reports whether role bypasses all permission and ownership checks.
func (r *RoleRegistry) IsSuper(role models.RoleType) bool {
	return role == r.superRole
}

// Grants reports whether role carries the (resource, action) permission.
// The super role is granted everything; an unknown role is granted nothing.
func (r *RoleRegistry) Grants(role models.RoleType, resource Resource, action Action) bool {
	if r.IsSuper(role) {
		return true
	}
	set, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = set[Permission{Resource: resource, Action: action}]
	return ok
}
