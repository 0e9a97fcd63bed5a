package http

import (
	"log"
	"net/http"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
)

// gatekeeper intercepts page navigation before any route logic runs. It only
// consults the token codec: no data-store round trip happens at the edge.
// API routes are exempt here and re-check authorization themselves.
func (s *Server) gatekeeper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, ok := auth.RuleFor(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		session := s.resolver.Resolve(readSessionCookie(r))
		switch session.State {
		case auth.StateUnauthenticated:
			http.Redirect(w, r, s.cfg.LoginPath, http.StatusFound)
			return
		case auth.StateInvalid:
			// Expired and malformed collapse into one redirect at the
			// edge; the API keeps them apart.
			log.Printf("gatekeeper: invalid token on %s", r.URL.Path)
			http.Redirect(w, r, s.cfg.LoginPath, http.StatusFound)
			return
		}

		if !auth.RoleAllowed(rule, session.Role) {
			// Wrong role lands on the public home page, not an error
			// page: the redirect must not reveal what exists here.
			http.Redirect(w, r, s.cfg.HomePath, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
