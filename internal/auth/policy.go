package auth

import (
	"strings"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

// PageRule maps a page path prefix to the roles allowed past the edge
// gatekeeper. An empty Roles slice means any authenticated user.
type PageRule struct {
	Prefix string
	Roles  []string
}

// PrivilegedRoles are treated interchangeably wherever privilege is checked.
var PrivilegedRoles = []string{model.RoleAdmin, model.RoleSuperadmin}

// PageRules is the single source of truth for page-level protection. The
// edge gatekeeper, the API handlers, and the client-side page guard all
// consult this table, so the three enforcement points cannot drift apart.
var PageRules = []PageRule{
	{Prefix: "/admin", Roles: PrivilegedRoles},
	{Prefix: "/me"},
}

// PublicPagePrefixes bypass the gatekeeper entirely. API routes perform
// their own checks and are never page-redirected.
var PublicPagePrefixes = []string{"/login", "/register", "/auth/", "/api/"}

// RuleFor returns the page rule matching a request path, if any.
func RuleFor(path string) (PageRule, bool) {
	for _, prefix := range PublicPagePrefixes {
		if strings.HasPrefix(path, prefix) {
			return PageRule{}, false
		}
	}
	for _, rule := range PageRules {
		if path == rule.Prefix || strings.HasPrefix(path, rule.Prefix+"/") {
			return rule, true
		}
	}
	return PageRule{}, false
}

// RoleAllowed reports whether a role satisfies a rule.
func RoleAllowed(rule PageRule, role string) bool {
	if len(rule.Roles) == 0 {
		return true
	}
	for _, allowed := range rule.Roles {
		if role == allowed {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether a role carries administrative access.
func IsPrivileged(role string) bool {
	return role == model.RoleAdmin || role == model.RoleSuperadmin
}
