package service

import (
	"context"
	"time"

	"github.com/lampochky/tasktracker/internal/models"
)

// MessageRepository defines the persistence operations required by the
// message service.
type MessageRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Message, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Message, error)
	Create(ctx context.Context, m *models.Message) error
	Update(ctx context.Context, m *models.Message) error
	Delete(ctx context.Context, id int64) error
}

// MessageService implements task-comment operations.
type MessageService struct {
	messages MessageRepository
	tasks    TaskRepository
	guard    *Guard
	now      func() time.Time
}

// NewMessageService constructs a MessageService.
func NewMessageService(messages MessageRepository, tasks TaskRepository, guard *Guard) *MessageService {
	return &MessageService{messages: messages, tasks: tasks, guard: guard, now: time.Now}
}

// Get returns the message. Requires GUEST.
func (s *MessageService) Get(ctx context.Context, userID, messageID int64) (*models.Message, error) {
	m, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMessageNotFound
	}
	if err := s.guard.Authorize(ctx, userID, m, models.EffectiveGuest); err != nil {
		return nil, err
	}
	return m, nil
}

// InTask returns all messages of a task, oldest first. Requires GUEST.
func (s *MessageService) InTask(ctx context.Context, userID, taskID int64) ([]models.Message, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if err := s.guard.Authorize(ctx, userID, t, models.EffectiveGuest); err != nil {
		return nil, err
	}
	return s.messages.ListByTask(ctx, t.ID)
}

// Create posts a message on a task. Requires GUEST on the task's project,
// the parent container of the not-yet-existing message.
func (s *MessageService) Create(ctx context.Context, userID, taskID int64, text string) (*models.Message, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if err := s.guard.Authorize(ctx, userID, t, models.EffectiveGuest); err != nil {
		return nil, err
	}
	m := &models.Message{
		Text:      text,
		CreatedAt: s.now(),
		UserID:    userID,
		TaskID:    t.ID,
		ProjectID: t.ProjectID,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update edits the message text. Only the author may edit a message.
func (s *MessageService) Update(ctx context.Context, userID, messageID int64, text string) (*models.Message, error) {
	m, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMessageNotFound
	}
	if m.UserID != userID {
		return nil, ErrPermissionDenied
	}
	m.Text = text
	if err := s.messages.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the message. Allowed for its author; anyone else needs
// ADMIN on the project.
func (s *MessageService) Delete(ctx context.Context, userID, messageID int64) (*models.Message, error) {
	m, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMessageNotFound
	}
	if m.UserID != userID {
		if err := s.guard.Authorize(ctx, userID, m, models.EffectiveAdmin); err != nil {
			return nil, err
		}
	}
	if err := s.messages.Delete(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}
