package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

type lostFoundSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func mapLostFound(item model.LostFoundItem) lostFoundSummary {
	return lostFoundSummary{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Type:        item.Type,
		Location:    item.Location,
		Status:      item.Status,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func (s *Server) handleListLostFound(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListLostFound(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]lostFoundSummary, 0, len(items))
	for _, item := range items {
		resp = append(resp, mapLostFound(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createLostFoundRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Location    string `json:"location"`
}

func (s *Server) handleCreateLostFound(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	var req createLostFoundRequest
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
	if req.Type != model.LostFoundTypeLost && req.Type != model.LostFoundTypeFound {
		writeError(w, http.StatusBadRequest, "invalid_type")
		return
	}

	now := time.Now().UTC()
	item := model.LostFoundItem{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Location:    strings.TrimSpace(req.Location),
		Status:      model.LostFoundStatusOpen,
		CreatedBy:   session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateLostFound(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusCreated, mapLostFound(item))
}

type updateLostFoundRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (s *Server) handleUpdateLostFound(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	item, err := s.store.GetLostFound(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	var req updateLostFoundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		kind := strings.TrimSpace(strings.ToLower(*req.Type))
		if kind != model.LostFoundTypeLost && kind != model.LostFoundTypeFound {
			writeError(w, http.StatusBadRequest, "invalid_type")
			return
		}
		item.Type = kind
	}
	if req.Location != nil {
		item.Location = strings.TrimSpace(*req.Location)
	}
	if req.Status != nil {
		status := strings.TrimSpace(strings.ToLower(*req.Status))
		if status != model.LostFoundStatusOpen && status != model.LostFoundStatusReturned {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		item.Status = status
	}

	updated, err := s.store.UpdateLostFound(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapLostFound(updated))
}

func (s *Server) handleDeleteLostFound(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.store.DeleteLostFound(r.Context(), itemID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
