package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

type issueCreator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type issueSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Status      string       `json:"status"`
	CreatedBy   issueCreator `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func mapIssue(issue model.Issue, includeEmail bool) issueSummary {
	creator := issueCreator{ID: issue.CreatedBy, Name: issue.CreatorName}
	if includeEmail {
		creator.Email = issue.CreatorEmail
	}
	return issueSummary{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Category:    issue.Category,
		Status:      issue.Status,
		CreatedBy:   creator,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}

// handleListIssues shapes the result set by role: anonymous and invalid-token
// readers get the public listing with creator names only, students default to
// their own issues (scope=all widens to the public view), privileged roles
// see everything including creator emails.
func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	scope := r.URL.Query().Get("scope")

	createdBy := ""
	includeEmail := false
	switch {
	case session.State != auth.StateAuthenticated:
		// logged-out view
	case auth.IsPrivileged(session.Role):
		includeEmail = true
	case scope != "all":
		createdBy = session.UserID
	}

	issues, err := s.store.ListIssues(r.Context(), createdBy)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]issueSummary, 0, len(issues))
	for _, issue := range issues {
		resp = append(resp, mapIssue(issue, includeEmail))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	var req createIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(strings.ToLower(req.Category))
	if req.Title == "" || req.Description == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if !validIssueCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "invalid_category")
		return
	}

	now := time.Now().UTC()
	issue := model.Issue{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      model.IssueStatusPending,
		CreatedBy:   session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateIssue(r.Context(), issue); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	created, err := s.store.GetIssue(r.Context(), issue.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusCreated, mapIssue(created, false))
}

func (s *Server) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	issueID := chi.URLParam(r, "issueID")
	issue, err := s.store.GetIssue(r.Context(), issueID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "issue_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapIssue(issue, true))
}

type updateIssueRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	issueID := chi.URLParam(r, "issueID")

	var req updateIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Status = strings.TrimSpace(strings.ToLower(req.Status))
	if !validIssueStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	issue, err := s.store.UpdateIssueStatus(r.Context(), issueID, req.Status)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "issue_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapIssue(issue, true))
}

func (s *Server) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	issueID := chi.URLParam(r, "issueID")
	if err := s.store.DeleteIssue(r.Context(), issueID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "issue_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func validIssueCategory(category string) bool {
	switch category {
	case model.IssueCategoryHostel, model.IssueCategoryWifi, model.IssueCategoryClassroom, model.IssueCategoryOther:
		return true
	default:
		return false
	}
}

func validIssueStatus(status string) bool {
	switch status {
	case model.IssueStatusPending, model.IssueStatusInProgress, model.IssueStatusResolved:
		return true
	default:
		return false
	}
}
