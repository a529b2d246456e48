package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lampochky/tasktracker/internal/models"
)

// ProjectService defines the interface for project operations required by
// the HTTP handlers.
type ProjectService interface {
	Get(ctx context.Context, userID, projectID int64) (*models.Project, models.EffectiveRank, error)
	All(ctx context.Context, userID int64) ([]models.Project, error)
	Create(ctx context.Context, userID int64, name string) (*models.Project, error)
	Update(ctx context.Context, userID, projectID int64, name string) (*models.Project, error)
	Delete(ctx context.Context, userID, projectID int64) (*models.Project, error)
	// Invite creates a pending membership for the user named by identifier.
	Invite(ctx context.Context, actorID, projectID int64, identifier string, role models.Rank) error
	// Answer confirms or declines the caller's pending invitation.
	Answer(ctx context.Context, userID, projectID int64, confirm bool) error
}

// ProjectHandler handles HTTP requests for projects and invitations.
type ProjectHandler struct {
	ProjectService ProjectService
}

// ProjectRequest represents the JSON payload for creating or renaming a
// project.
type ProjectRequest struct {
	Name string `json:"name"`
}

// InviteRequest represents the JSON payload for inviting a user. The
// identifier may be a username or an email.
type InviteRequest struct {
	UserIdentifier string `json:"userIdentifier"`
	Role           string `json:"role"`
}

// AnswerRequest represents the JSON payload for resolving an invitation.
type AnswerRequest struct {
	Confirm bool `json:"confirm"`
}

// ProjectResponse represents a project together with the caller's role on
// it, where the endpoint resolves one.
type ProjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Get handles GET /data/project/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	project, rank, err := h.ProjectService.Get(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, ProjectResponse{ID: project.ID, Name: project.Name, Role: rank.String()})
}

// All handles GET /data/project/all, returning the caller's confirmed
// projects.
func (h *ProjectHandler) All(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	projects, err := h.ProjectService.All(r.Context(), p.UserID)
	if err != nil {
		fail(w, err)
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, ProjectResponse{ID: project.ID, Name: project.Name})
	}
	writeJSON(w, out)
}

// Create handles POST /data/project. The creator becomes a confirmed admin
// of the new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	project, err := h.ProjectService.Create(r.Context(), p.UserID, req.Name)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, ProjectResponse{ID: project.ID, Name: project.Name, Role: models.RankAdmin.String()})
}

// Update handles PUT /data/project/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	project, err := h.ProjectService.Update(r.Context(), p.UserID, id, req.Name)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, ProjectResponse{ID: project.ID, Name: project.Name})
}

// Delete handles DELETE /data/project/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	project, err := h.ProjectService.Delete(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, ProjectResponse{ID: project.ID, Name: project.Name})
}

// Invite handles POST /data/project/{id}/invite. An unknown role name is
// downgraded to GUEST rather than rejected.
func (h *ProjectHandler) Invite(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserIdentifier == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	role, ok := models.ParseRank(req.Role)
	if !ok {
		role = models.RankGuest
	}
	if err := h.ProjectService.Invite(r.Context(), p.UserID, id, req.UserIdentifier, role); err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}

// Answer handles PUT /data/project/{id}/invite: the invitee confirms or
// declines their pending invitation.
func (h *ProjectHandler) Answer(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.ProjectService.Answer(r.Context(), p.UserID, id, req.Confirm); err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}
