package permissions

import (
	"github.com/jerome2525/wingz-api/internal/models"
)

type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool {
	return d == Allow
}

// Resource is anything the policy can make an object-scoped decision about.
type Resource interface {
	AccessibleBy(u *models.User) bool
}

// Policy decides whether a principal may perform an action, optionally
// against a concrete resource. It is a pure function over its inputs: it
// never fetches state and never errors, it only answers Allow or Deny.
type Policy struct {
	// openActions are permitted without a principal, e.g. account creation.
	openActions map[Action]bool
}

func NewPolicy(openActions ...Action) *Policy {
	open := make(map[Action]bool, len(openActions))
	for _, action := range openActions {
		open[action] = true
	}
	return &Policy{openActions: open}
}

// Evaluate gates an action. Rules, in order:
//   - no principal: Deny unless the action is on the configured open list
//   - admin: Allow unconditionally
//   - rider/driver: Allow only object-scoped actions on resources that
//     reference them; collection-level actions are denied
//   - any other role value: Deny (fail closed)
//
// resource may be nil for collection-level actions (list, create).
func (p *Policy) Evaluate(principal *models.User, action Action, resource Resource) Decision {
	if principal == nil {
		if p.openActions[action] {
			return Allow
		}
		return Deny
	}

	switch principal.Role {
	case models.RoleAdmin:
		return Allow
	case models.RoleRider, models.RoleDriver:
		if resource == nil {
			return Deny
		}
		if resource.AccessibleBy(principal) {
			return Allow
		}
		return Deny
	default:
		return Deny
	}
}
