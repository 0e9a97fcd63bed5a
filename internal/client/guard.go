package client

import (
	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
)

// Decision is what a page guard tells the UI to do.
type Decision int

const (
	// DecisionWait means the session is still resolving; render nothing yet.
	DecisionWait Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// GuardPage decides whether the cached session may render a page. It reads
// the same rule table the edge gatekeeper enforces, so the two layers agree
// on which roles a page needs. Pages without a rule render immediately, even
// while the session is loading.
func GuardPage(cache *SessionCache, path string) Decision {
	rule, ok := auth.RuleFor(path)
	if !ok {
		return DecisionAllow
	}

	state, profile := cache.Current()
	switch state {
	case StateLoading:
		return DecisionWait
	case StateUnauthenticated:
		return DecisionRedirectLogin
	}

	if !auth.RoleAllowed(rule, profile.Role) {
		return DecisionRedirectHome
	}
	return DecisionAllow
}
