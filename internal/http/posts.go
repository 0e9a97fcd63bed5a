package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

type postSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func mapPost(post model.Post) postSummary {
	return postSummary{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Type:        post.Type,
		CreatedBy:   post.CreatedBy,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// Public notice/event listings are identical for every caller, so they are
// the one surface cached in Redis. Session results are never cached.
func postsCacheKey(postType string) string {
	return "posts:" + postType
}

func (s *Server) cachedPosts(ctx context.Context, postType string) ([]postSummary, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, postsCacheKey(postType)).Bytes()
	if err != nil {
		return nil, false
	}
	var posts []postSummary
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

func (s *Server) storePostsCache(ctx context.Context, postType string, posts []postSummary) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, postsCacheKey(postType), raw, s.cfg.PostsCacheTTL).Err(); err != nil {
		log.Printf("posts cache set failed: %v", err)
	}
}

func (s *Server) invalidatePostsCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys := []string{
		postsCacheKey(""),
		postsCacheKey(model.PostTypeNotice),
		postsCacheKey(model.PostTypeEvent),
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("posts cache invalidation failed: %v", err)
	}
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	postType := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("type")))
	if postType != "" && postType != model.PostTypeNotice && postType != model.PostTypeEvent {
		writeError(w, http.StatusBadRequest, "invalid_type")
		return
	}

	if posts, ok := s.cachedPosts(r.Context(), postType); ok {
		writeJSON(w, http.StatusOK, posts)
		return
	}

	posts, err := s.store.ListPosts(r.Context(), postType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]postSummary, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, mapPost(post))
	}
	s.storePostsCache(r.Context(), postType, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	post, err := s.store.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapPost(post))
}

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Type = strings.TrimSpace(strings.ToLower(req.Type))
	if req.Title == "" || req.Description == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if req.Type != model.PostTypeNotice && req.Type != model.PostTypeEvent {
		writeError(w, http.StatusBadRequest, "invalid_type")
		return
	}

	now := time.Now().UTC()
	post := model.Post{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		CreatedBy:   session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreatePost(r.Context(), post); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	s.invalidatePostsCache(r.Context())
	writeJSON(w, http.StatusCreated, mapPost(post))
}

type updatePostRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := s.store.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		post.Description = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		kind := strings.TrimSpace(strings.ToLower(*req.Type))
		if kind != model.PostTypeNotice && kind != model.PostTypeEvent {
			writeError(w, http.StatusBadRequest, "invalid_type")
			return
		}
		post.Type = kind
	}

	updated, err := s.store.UpdatePost(r.Context(), post)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	s.invalidatePostsCache(r.Context())
	writeJSON(w, http.StatusOK, mapPost(updated))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if err := s.store.DeletePost(r.Context(), postID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	s.invalidatePostsCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
