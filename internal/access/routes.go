package access

import (
	"regexp"
	"strings"
)

// RouteClass is the category a URL path resolves to for access control.
type RouteClass string

const (
	RoutePublic  RouteClass = "public"
	RouteShared  RouteClass = "shared"
	RouteAdmin   RouteClass = "admin"
	RouteOwner   RouteClass = "owner"
	RouteRenter  RouteClass = "renter"
	RouteUnknown RouteClass = "unknown"
)

// publicRoutes are reachable without a session. The home path "/" is matched
// exactly, never as a prefix, otherwise every route would classify as public.
var publicRoutes = []string{
	"/",
	"/login",
	"/register",
	"/register/owner",
	"/vehicles",
	"/about",
	"/contact",
	"/terms",
	"/privacy",
	"/forgot-password",
	"/reset-password",
}

// sharedRoutes are reachable by any authenticated, non-pending role.
// Bracketed segments are dynamic and match a single path segment.
var sharedRoutes = []string{
	"/profile",
	"/profile/[id]",
	"/settings",
	"/notifications",
	"/support",
	"/vehicles/[id]",
	"/bookings/[id]",
}

var sharedPatterns = compileRoutePatterns(sharedRoutes)

// renterPrefixes gate the renter-only area of the app.
var renterPrefixes = []string{"/dashboard", "/favorites", "/messages"}

func compileRoutePatterns(routes []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(routes))
	for _, r := range routes {
		parts := strings.Split(r, "/")
		for i, p := range parts {
			if strings.HasPrefix(p, "[") && strings.HasSuffix(p, "]") {
				parts[i] = "[^/]+"
			} else {
				parts[i] = regexp.QuoteMeta(p)
			}
		}
		out = append(out, regexp.MustCompile("^"+strings.Join(parts, "/")+"$"))
	}
	return out
}

// Classify resolves path into exactly one RouteClass. Unknown paths are left
// for the decision function to treat as requiring authentication, not public.
func Classify(path string) RouteClass {
	if path == "" {
		return RouteUnknown
	}
	path = normalize(path)

	for _, p := range publicRoutes {
		if path == p {
			return RoutePublic
		}
	}
	for _, re := range sharedPatterns {
		if re.MatchString(path) {
			return RouteShared
		}
	}
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return RouteAdmin
	}
	if path == "/owner" || strings.HasPrefix(path, "/owner/") {
		return RouteOwner
	}
	for _, p := range renterPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return RouteRenter
		}
	}
	return RouteUnknown
}

func normalize(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
