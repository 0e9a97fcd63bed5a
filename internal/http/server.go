package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/config"
	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

// Store is the persistence surface the portal needs. The pgx repository
// implements it; handler tests substitute an in-memory fake.
type Store interface {
	auth.UserStore

	CreateIssue(ctx context.Context, issue model.Issue) error
	ListIssues(ctx context.Context, createdBy string) ([]model.Issue, error)
	GetIssue(ctx context.Context, issueID string) (model.Issue, error)
	UpdateIssueStatus(ctx context.Context, issueID, status string) (model.Issue, error)
	DeleteIssue(ctx context.Context, issueID string) error

	CreateLostFound(ctx context.Context, item model.LostFoundItem) error
	ListLostFound(ctx context.Context) ([]model.LostFoundItem, error)
	GetLostFound(ctx context.Context, itemID string) (model.LostFoundItem, error)
	UpdateLostFound(ctx context.Context, item model.LostFoundItem) (model.LostFoundItem, error)
	DeleteLostFound(ctx context.Context, itemID string) error

	CreatePost(ctx context.Context, post model.Post) error
	ListPosts(ctx context.Context, postType string) ([]model.Post, error)
	GetPost(ctx context.Context, postID string) (model.Post, error)
	UpdatePost(ctx context.Context, post model.Post) (model.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type Server struct {
	cfg      config.Config
	store    Store
	creds    *auth.Credentials
	resolver *auth.Resolver
	redis    *redis.Client
	pages    http.Handler
}

// NewServer wires the auth core around a store. pages serves everything that
// is not an /auth or /api route (the UI layer); it may be nil.
func NewServer(cfg config.Config, store Store, redisClient *redis.Client, pages http.Handler) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		creds:    auth.NewCredentials(store),
		resolver: auth.NewResolver(cfg.JWTSecret, cfg.JWTIssuer, store),
		redis:    redisClient,
		pages:    pages,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.gatekeeper, s.withSession)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/auth/me", s.handleGetMe)

	r.Route("/api/issues", func(r chi.Router) {
		r.Get("/", s.handleListIssues)
		r.With(s.requireAuth).Post("/", s.handleCreateIssue)
		r.With(s.requireAuth, s.requireAdmin).Get("/{issueID}", s.handleGetIssue)
		r.With(s.requireAuth, s.requireAdmin).Put("/{issueID}", s.handleUpdateIssueStatus)
		r.With(s.requireAuth, s.requireAdmin).Delete("/{issueID}", s.handleDeleteIssue)
	})

	r.Route("/api/lost-found", func(r chi.Router) {
		r.Get("/", s.handleListLostFound)
		r.With(s.requireAuth).Post("/", s.handleCreateLostFound)
		r.With(s.requireAuth, s.requireAdmin).Put("/{itemID}", s.handleUpdateLostFound)
		r.With(s.requireAuth, s.requireAdmin).Delete("/{itemID}", s.handleDeleteLostFound)
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", s.handleListPosts)
		r.Get("/{postID}", s.handleGetPost)
		r.With(s.requireAuth, s.requireAdmin).Post("/", s.handleCreatePost)
		r.With(s.requireAuth, s.requireAdmin).Put("/{postID}", s.handleUpdatePost)
		r.With(s.requireAuth, s.requireAdmin).Delete("/{postID}", s.handleDeletePost)
	})

	r.NotFound(s.handlePage)

	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if s.pages != nil {
		s.pages.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = auth.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid_email")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password_too_short")
		return
	}

	profile, err := s.creds.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email_already_registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	profile, err := s.creds.FindByEmailAndPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	token, err := auth.NewSessionToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.SessionTTL, auth.Claims{
		UserID: profile.ID,
		Role:   profile.Role,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}

	setSessionCookie(w, r, token, s.cfg.SessionTTL)
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	profile, session, err := s.resolver.ResolveProfile(r.Context(), readSessionCookie(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	switch session.State {
	case auth.StateInvalid:
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	case auth.StateUnauthenticated:
		writeError(w, http.StatusUnauthorized, "not_authenticated")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// withSession resolves the cookie once per request (codec-only, no store
// round trip) and stashes the result in the context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := s.resolver.Resolve(readSessionCookie(r))
		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		switch session.State {
		case auth.StateInvalid:
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		case auth.StateUnauthenticated:
			writeError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		if !auth.IsPrivileged(session.Role) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type sessionKey struct{}

func sessionFromContext(ctx context.Context) auth.Session {
	session, _ := ctx.Value(sessionKey{}).(auth.Session)
	return session
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"message": code})
}
