package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lampochky/tasktracker/internal/models"
)

// ListService defines the interface for list operations required by the
// HTTP handlers.
type ListService interface {
	Get(ctx context.Context, userID, listID int64) (*models.List, error)
	InProject(ctx context.Context, userID, projectID int64) ([]models.List, error)
	Create(ctx context.Context, userID, projectID int64, name string) (*models.List, error)
	Update(ctx context.Context, userID, listID int64, name string) (*models.List, error)
	Delete(ctx context.Context, userID, listID int64) (*models.List, error)
}

// ListHandler handles HTTP requests for task lists.
type ListHandler struct {
	ListService ListService
}

// ListRequest represents the JSON payload for creating or renaming a list.
type ListRequest struct {
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
}

// ListResponse represents a list on the wire.
type ListResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
}

func listResponse(l *models.List) ListResponse {
	return ListResponse{ID: l.ID, Name: l.Name, ProjectID: l.ProjectID}
}

// Get handles GET /data/list/{id}.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	l, err := h.ListService.Get(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, listResponse(l))
}

// InProject handles GET /data/list/in_project?id=.
func (h *ListHandler) InProject(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	lists, err := h.ListService.InProject(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	out := make([]ListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, listResponse(&lists[i]))
	}
	writeJSON(w, out)
}

// Create handles POST /data/list.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req ListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	l, err := h.ListService.Create(r.Context(), p.UserID, req.ProjectID, req.Name)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, listResponse(l))
}

// Update handles PUT /data/list/{id}.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req ListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	l, err := h.ListService.Update(r.Context(), p.UserID, id, req.Name)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, listResponse(l))
}

// Delete handles DELETE /data/list/{id}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	l, err := h.ListService.Delete(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, listResponse(l))
}
