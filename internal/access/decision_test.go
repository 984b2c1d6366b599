package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"juanride/internal/domain"
)

var allRoles = []domain.UserRole{
	domain.RoleAdmin,
	domain.RoleOwner,
	domain.RoleRenter,
	domain.RolePending,
	RoleNone,
}

func TestCanAccessRoute_HomePage(t *testing.T) {
	assert.False(t, CanAccessRoute("/", domain.RoleAdmin).Allowed)
	assert.False(t, CanAccessRoute("/", domain.RoleOwner).Allowed)
	assert.True(t, CanAccessRoute("/", domain.RoleRenter).Allowed)
	assert.True(t, CanAccessRoute("/", domain.RolePending).Allowed)
	assert.True(t, CanAccessRoute("/", RoleNone).Allowed)
}

func TestCanAccessRoute_AdminArea(t *testing.T) {
	for _, role := range allRoles {
		d := CanAccessRoute("/admin/dashboard", role)
		if role == domain.RoleAdmin {
			assert.True(t, d.Allowed, "admin must reach /admin/dashboard")
		} else {
			assert.False(t, d.Allowed, "role %q must not reach /admin/dashboard", role)
			assert.Equal(t, ReasonAdminRequired, d.Reason)
		}
	}
}

func TestCanAccessRoute_OwnerArea(t *testing.T) {
	for _, role := range allRoles {
		d := CanAccessRoute("/owner/vehicles", role)
		assert.Equal(t, role == domain.RoleOwner, d.Allowed, "role %q", role)
		if !d.Allowed {
			assert.Equal(t, ReasonOwnerRequired, d.Reason)
		}
	}
}

func TestCanAccessRoute_RenterArea(t *testing.T) {
	for _, path := range []string{"/dashboard", "/favorites", "/messages/42"} {
		for _, role := range allRoles {
			d := CanAccessRoute(path, role)
			assert.Equal(t, role == domain.RoleRenter, d.Allowed, "path %q role %q", path, role)
		}
	}
}

func TestCanAccessRoute_SharedNeedsAuth(t *testing.T) {
	d := CanAccessRoute("/profile", RoleNone)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "Authentication required")

	assert.False(t, CanAccessRoute("/profile", domain.RolePending).Allowed)
	assert.True(t, CanAccessRoute("/profile", domain.RoleRenter).Allowed)
	assert.True(t, CanAccessRoute("/profile/123", domain.RoleOwner).Allowed)
	assert.True(t, CanAccessRoute("/profile", domain.RoleAdmin).Allowed)
}

func TestCanAccessRoute_UnknownFailsClosed(t *testing.T) {
	d := CanAccessRoute("/no/such/page", RoleNone)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAuthRequired, d.Reason)

	assert.False(t, CanAccessRoute("/no/such/page", domain.RolePending).Allowed)
	assert.True(t, CanAccessRoute("/no/such/page", domain.RoleRenter).Allowed)
	assert.True(t, CanAccessRoute("/no/such/page", domain.RoleAdmin).Allowed)
}

func TestCanAccessRoute_PublicOpenToAll(t *testing.T) {
	for _, path := range []string{"/login", "/register", "/vehicles", "/about"} {
		for _, role := range allRoles {
			assert.True(t, CanAccessRoute(path, role).Allowed, "path %q role %q", path, role)
		}
	}
}

// Every (path, role) pair resolves through exactly one rule: the decision is
// total and deterministic, and a decision always carries a reason when denied.
func TestCanAccessRoute_Total(t *testing.T) {
	paths := []string{
		"/", "/login", "/vehicles", "/vehicles/9", "/profile", "/profile/9",
		"/admin", "/admin/users", "/owner", "/owner/bookings",
		"/dashboard", "/favorites", "/messages", "/unknown", "/admin-ish",
	}
	for _, path := range paths {
		for _, role := range allRoles {
			d := CanAccessRoute(path, role)
			if !d.Allowed {
				assert.NotEmpty(t, d.Reason, "denial for %q/%q must carry a reason", path, role)
			}
			// determinism
			assert.Equal(t, d, CanAccessRoute(path, role))
		}
	}
}
