package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want RouteClass
	}{
		{"/", RoutePublic},
		{"/login", RoutePublic},
		{"/vehicles", RoutePublic},
		{"/vehicles/17", RouteShared},
		{"/profile", RouteShared},
		{"/profile/abc", RouteShared},
		{"/profile/abc/extra", RouteUnknown},
		{"/admin", RouteAdmin},
		{"/admin/users", RouteAdmin},
		{"/administrator", RouteUnknown},
		{"/owner", RouteOwner},
		{"/owner/vehicles/3", RouteOwner},
		{"/ownership", RouteUnknown},
		{"/dashboard", RouteRenter},
		{"/dashboard/bookings", RouteRenter},
		{"/favorites", RouteRenter},
		{"/messages/5", RouteRenter},
		{"/totally-unknown", RouteUnknown},
		{"", RouteUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.path), "path %q", tc.path)
	}
}

// "/" must match exactly: no other path may classify as public through it.
func TestClassify_HomeIsExact(t *testing.T) {
	assert.Equal(t, RoutePublic, Classify("/"))
	assert.NotEqual(t, RoutePublic, Classify("/anything"))
}

func TestClassify_TrailingSlash(t *testing.T) {
	assert.Equal(t, RoutePublic, Classify("/login/"))
	assert.Equal(t, RouteAdmin, Classify("/admin/"))
}
