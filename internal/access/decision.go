package access

import "juanride/internal/domain"

// RoleNone marks an unauthenticated caller.
const RoleNone domain.UserRole = ""

// Decision is the result of an access check. Denial carries a human-readable
// reason; the caller is responsible for redirecting.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

const (
	ReasonAdminRequired  = "Admin access required"
	ReasonOwnerRequired  = "Owner access required"
	ReasonRenterRequired = "Renter access required"
	ReasonAuthRequired   = "Authentication required"
	ReasonUseDashboard   = "Use your dashboard instead of the public home page"
)

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

func authenticated(r domain.UserRole) bool {
	return r != RoleNone && r != domain.RolePending
}

// CanAccessRoute decides whether role may open path. Pure; never errors.
// Rules are ordered, first match wins:
//  1. admin and owner are pushed off the public home page to their dashboards
//  2. public routes are open to everyone else
//  3. shared routes need any authenticated, non-pending role
//  4. /admin needs admin, /owner needs owner, renter area needs renter
//  5. anything unclassified fails closed to "authenticated only"
func CanAccessRoute(path string, role domain.UserRole) Decision {
	class := Classify(path)

	if normalize(path) == "/" && (role == domain.RoleAdmin || role == domain.RoleOwner) {
		return deny(ReasonUseDashboard)
	}

	switch class {
	case RoutePublic:
		return allow()
	case RouteShared:
		if authenticated(role) {
			return allow()
		}
		return deny(ReasonAuthRequired)
	case RouteAdmin:
		if role == domain.RoleAdmin {
			return allow()
		}
		return deny(ReasonAdminRequired)
	case RouteOwner:
		if role == domain.RoleOwner {
			return allow()
		}
		return deny(ReasonOwnerRequired)
	case RouteRenter:
		if role == domain.RoleRenter {
			return allow()
		}
		return deny(ReasonRenterRequired)
	default:
		if authenticated(role) {
			return allow()
		}
		return deny(ReasonAuthRequired)
	}
}
