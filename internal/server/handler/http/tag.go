package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lampochky/tasktracker/internal/models"
)

// TagService defines the interface for tag operations required by the HTTP
// handlers.
type TagService interface {
	Get(ctx context.Context, userID, tagID int64) (*models.Tag, error)
	InProject(ctx context.Context, userID, projectID int64) ([]models.Tag, error)
	Create(ctx context.Context, userID, projectID int64, name string) (*models.Tag, error)
	Update(ctx context.Context, userID, tagID int64, name string) (*models.Tag, error)
	Delete(ctx context.Context, userID, tagID int64) (*models.Tag, error)
}

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	TagService TagService
}

// TagRequest represents the JSON payload for creating or renaming a tag.
type TagRequest struct {
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
}

// TagResponse represents a tag on the wire.
type TagResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
}

func tagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, ProjectID: t.ProjectID}
}

// Get handles GET /data/tag/{id}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.TagService.Get(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, tagResponse(t))
}

// InProject handles GET /data/tag/in_project?id=.
func (h *TagHandler) InProject(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tags, err := h.TagService.InProject(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, tagResponse(&tags[i]))
	}
	writeJSON(w, out)
}

// Create handles POST /data/tag.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	t, err := h.TagService.Create(r.Context(), p.UserID, req.ProjectID, req.Name)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, tagResponse(t))
}

// Update handles PUT /data/tag/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	t, err := h.TagService.Update(r.Context(), p.UserID, id, req.Name)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, tagResponse(t))
}

// Delete handles DELETE /data/tag/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.TagService.Delete(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, tagResponse(t))
}
