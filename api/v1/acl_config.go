package v1

import "github.com/soundbound/soundbound-server/model"

// Routes anonymous clients may call. The interceptor still resolves the
// principal when a token is present so handlers can widen visibility for
// owners.
var authenticationAllowlist = map[string]bool{
	"auth.signup":          true,
	"auth.login":           true,
	"users.authors":        true,
	"books.search":         true,
	"books.popular":        true,
	"books.get":            true,
	"books.similar":        true,
	"playlists.authorreco": true,
	"playlists.get":        true,
	"tags.list":            true,
}

// isUnauthorizeAllowed returns whether the route is exempted from
// authentication.
func isUnauthorizeAllowed(routeName string) bool {
	return authenticationAllowlist[routeName]
}

// rolePolicy restricts routes to the listed roles. Routes absent from the
// table accept any authenticated user.
var rolePolicy = map[string][]model.Role{
	"tags.create":                {model.RoleAdmin},
	"admin.applications.list":    {model.RoleAdmin},
	"admin.applications.pending": {model.RoleAdmin},
	"admin.applications.get":     {model.RoleAdmin},
	"admin.applications.approve": {model.RoleAdmin},
	"admin.applications.reject":  {model.RoleAdmin},
}

// isRoleAllowed checks the declarative policy table for the route.
func isRoleAllowed(routeName string, role model.Role) bool {
	allowed, restricted := rolePolicy[routeName]
	if !restricted {
		return true
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
