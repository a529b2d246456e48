package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lampochky/tasktracker/internal/models"
)

// MessageService defines the interface for task-comment operations required
// by the HTTP handlers.
type MessageService interface {
	Get(ctx context.Context, userID, messageID int64) (*models.Message, error)
	InTask(ctx context.Context, userID, taskID int64) ([]models.Message, error)
	Create(ctx context.Context, userID, taskID int64, text string) (*models.Message, error)
	Update(ctx context.Context, userID, messageID int64, text string) (*models.Message, error)
	Delete(ctx context.Context, userID, messageID int64) (*models.Message, error)
}

// MessageHandler handles HTTP requests for task comments.
type MessageHandler struct {
	MessageService MessageService
}

// MessageRequest represents the JSON payload for posting or editing a
// message.
type MessageRequest struct {
	Text   string `json:"text"`
	TaskID int64  `json:"taskId"`
}

// MessageResponse represents a message on the wire.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int64     `json:"userId"`
	TaskID    int64     `json:"taskId"`
}

func messageResponse(m *models.Message) MessageResponse {
	return MessageResponse{ID: m.ID, Text: m.Text, CreatedAt: m.CreatedAt, UserID: m.UserID, TaskID: m.TaskID}
}

// Get handles GET /data/message/{id}.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.MessageService.Get(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, messageResponse(m))
}

// InTask handles GET /data/message/in_task?id=, returning messages oldest
// first.
func (h *MessageHandler) InTask(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := queryID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	messages, err := h.MessageService.InTask(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, messageResponse(&messages[i]))
	}
	writeJSON(w, out)
}

// Create handles POST /data/message.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	m, err := h.MessageService.Create(r.Context(), p.UserID, req.TaskID, req.Text)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, messageResponse(m))
}

// Update handles PUT /data/message/{id}. Only the author may edit.
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	m, err := h.MessageService.Update(r.Context(), p.UserID, id, req.Text)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, messageResponse(m))
}

// Delete handles DELETE /data/message/{id}. Allowed for the author or a
// project admin.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.MessageService.Delete(r.Context(), p.UserID, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, messageResponse(m))
}
