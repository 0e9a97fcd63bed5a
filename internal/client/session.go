package client

import (
	"sync"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
)

// State is the session cache lifecycle. A cache starts Loading and stays
// there until the first Set, whatever the outcome.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionCache holds the client-side view of the current session. It is a
// cache of the server's answer, never an authority: every mutation flows
// through Set after a server round trip.
type SessionCache struct {
	mu      sync.RWMutex
	state   State
	profile *auth.Profile
}

func NewSessionCache() *SessionCache {
	return &SessionCache{state: StateLoading}
}

// Current returns the cached state and, when authenticated, a copy of the
// profile.
func (c *SessionCache) Current() (State, *auth.Profile) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return c.state, nil
	}
	profile := *c.profile
	return c.state, &profile
}

// Set records the server's answer. A nil profile means signed out. Either
// way the loading phase is over: callers that were waiting can decide.
func (c *SessionCache) Set(profile *auth.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if profile == nil {
		c.state = StateUnauthenticated
		c.profile = nil
		return
	}
	copied := *profile
	c.state = StateAuthenticated
	c.profile = &copied
}
