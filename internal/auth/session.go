package auth

import (
	"context"
	"errors"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

// State is the outcome of resolving a request's cookie.
type State int

const (
	// StateUnauthenticated means no credential was presented, or the
	// credential pointed at a user that no longer exists.
	StateUnauthenticated State = iota
	// StateInvalid means a token was presented but failed verification.
	// Callers treat it like StateUnauthenticated; the distinction exists
	// for logging.
	StateInvalid
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is computed fresh on every request and never cached server-side.
type Session struct {
	State  State
	UserID string
	Role   string
}

// Resolver turns a raw cookie value into a Session. Resolve is codec-only;
// ResolveProfile additionally re-hydrates the user record.
type Resolver struct {
	secret string
	issuer string
	users  UserStore
}

func NewResolver(secret, issuer string, users UserStore) *Resolver {
	return &Resolver{secret: secret, issuer: issuer, users: users}
}

// Resolve verifies the token without touching the store. The edge gatekeeper
// and every handler that only needs identity+role use this mode.
func (r *Resolver) Resolve(rawCookie string) Session {
	if rawCookie == "" {
		return Session{State: StateUnauthenticated}
	}
	claims, err := VerifySessionToken(r.secret, rawCookie)
	if err != nil {
		return Session{State: StateInvalid}
	}
	return Session{
		State:  StateAuthenticated,
		UserID: claims.UserID,
		Role:   claims.Role,
	}
}

// ResolveProfile verifies the token and re-reads the user record, for
// endpoints that serve profile fields beyond identity+role (/auth/me). A
// valid token whose user has since been deleted resolves to
// StateUnauthenticated: a dangling token grants nothing.
func (r *Resolver) ResolveProfile(ctx context.Context, rawCookie string) (Profile, Session, error) {
	session := r.Resolve(rawCookie)
	if session.State != StateAuthenticated {
		return Profile{}, session, nil
	}
	user, err := r.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return Profile{}, Session{State: StateUnauthenticated}, nil
		}
		return Profile{}, session, err
	}
	return toProfile(user), session, nil
}
