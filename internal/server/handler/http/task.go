package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lampochky/tasktracker/internal/models"
	"github.com/lampochky/tasktracker/internal/service"
)

// TaskService defines the interface for task operations required by the
// HTTP handlers.
type TaskService interface {
	Get(ctx context.Context, userID, taskID int64) (*models.Task, error)
	InList(ctx context.Context, userID, listID int64) ([]models.Task, error)
	Create(ctx context.Context, userID int64, input service.TaskInput) (*models.Task, error)
	Update(ctx context.Context, userID, taskID int64, input service.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) (*models.Task, error)
}

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	TaskService TaskService
}

// TaskRequest represents the JSON payload for creating or updating a task.
type TaskRequest struct {
	Name           string    `json:"name"`
	DateToStart    time.Time `json:"dateToStart"`
	DateToFinish   time.Time `json:"dateToFinish"`
	Priority       int       `json:"priority"`
	Description    string    `json:"description"`
	ListID         int64     `json:"listId"`
	AssignedUserID *int64    `json:"assignedUserId"`
	TagIDs         []int64   `json:"tagIds"`
}

func (req TaskRequest) input() service.TaskInput {
	return service.TaskInput{
		Name:           req.Name,
		DateToStart:    req.DateToStart,
		DateToFinish:   req.DateToFinish,
		Priority:       req.Priority,
		Description:    req.Description,
		ListID:         req.ListID,
		AssignedUserID: req.AssignedUserID,
		TagIDs:         req.TagIDs,
	}
}

// TaskResponse represents a task on the wire.
type TaskResponse struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	DateToStart    time.Time     `json:"dateToStart"`
	DateToFinish   time.Time     `json:"dateToFinish"`
	Priority       int           `json:"priority"`
	Description    string        `json:"description"`
	ListID         int64         `json:"listId"`
	ProjectID      int64         `json:"projectId"`
	AssignedUserID *int64        `json:"assignedUserId"`
	CreatorID      int64         `json:"creatorId"`
	Tags           []TagResponse `json:"tags"`
}

func taskResponse(t *models.Task) TaskResponse {
	tags := make([]TagResponse, 0, len(t.Tags))
	for i := range t.Tags {
		tags = append(tags, tagResponse(&t.Tags[i]))
	}
	return TaskResponse{
		ID:             t.ID,
		Name:           t.Name,
		DateToStart:    t.DateToStart,
		DateToFinish:   t.DateToFinish,
		Priority:       t.Priority,
		Description:    t.Description,
		ListID:         t.ListID,
		ProjectID:      t.ProjectID,
		AssignedUserID: t.AssignedUserID,
		CreatorID:      t.CreatorID,
		Tags:           tags,
	}
}

// failWrite maps errors from task create and update. A list or assignee
// referenced by the payload that does not exist is a payload problem, not a
// lookup on the request path, so it surfaces as 422 instead of 404.
func failWrite(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrListNotFound) || errors.Is(err, service.ErrUserNotFound) ||
		errors.Is(err, service.ErrTagNotFound) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	fail(w, err)
}

// Get handles GET /data/task/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.TaskService.Get(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, taskResponse(t))
}

// InList handles GET /data/task/in_list?id=.
func (h *TaskHandler) InList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tasks, err := h.TaskService.InList(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskResponse(&tasks[i]))
	}
	writeJSON(w, out)
}

// Create handles POST /data/task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	t, err := h.TaskService.Create(r.Context(), p.UserID, req.input())
	if err != nil {
		failWrite(w, err)
		return
	}

	writeJSON(w, taskResponse(t))
}

// Update handles PUT /data/task/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	t, err := h.TaskService.Update(r.Context(), p.UserID, id, req.input())
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			fail(w, err)
			return
		}
		failWrite(w, err)
		return
	}

	writeJSON(w, taskResponse(t))
}

// Delete handles DELETE /data/task/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.TaskService.Delete(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, taskResponse(t))
}
