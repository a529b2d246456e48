package service

import (
	"context"
	"errors"
	"time"

	"github.com/lampochky/tasktracker/internal/models"
)

// TaskRepository defines the persistence operations required by the task
// service.
type TaskRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	ListByList(ctx context.Context, listID int64) ([]models.Task, error)
	Create(ctx context.Context, t *models.Task) error
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id int64) error
	SetTags(ctx context.Context, taskID int64, tagIDs []int64) error
}

// TagRepository defines the persistence operations required by the task and
// tag services.
type TagRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Tag, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.Tag, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Tag, error)
	Create(ctx context.Context, t *models.Tag) error
	Update(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id int64) error
}

// TaskInput carries the mutable fields of a task for create and update.
type TaskInput struct {
	Name           string
	DateToStart    time.Time
	DateToFinish   time.Time
	Priority       int
	Description    string
	ListID         int64
	AssignedUserID *int64
	TagIDs         []int64
}

// TaskService implements task operations.
type TaskService struct {
	tasks TaskRepository
	lists ListRepository
	tags  TagRepository
	users UserRepository
	guard *Guard
}

// NewTaskService constructs a TaskService.
func NewTaskService(tasks TaskRepository, lists ListRepository, tags TagRepository, users UserRepository, guard *Guard) *TaskService {
	return &TaskService{tasks: tasks, lists: lists, tags: tags, users: users, guard: guard}
}

// Get returns the task with its tags. Requires GUEST.
func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*models.Task, error) {
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
	if t.Tags, err = s.tags.ListByTask(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// InList returns all tasks of a list with their tags. Requires GUEST.
func (s *TaskService) InList(ctx context.Context, userID, listID int64) ([]models.Task, error) {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListNotFound
	}
	if err := s.guard.Authorize(ctx, userID, l, models.EffectiveGuest); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByList(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Tags, err = s.tags.ListByTask(ctx, tasks[i].ID); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// Create stores a new task in input.ListID. The creator must hold DEVELOPER
// on the list's project; an assigned user, when present, must exist and
// must independently hold DEVELOPER there as well.
func (s *TaskService) Create(ctx context.Context, userID int64, input TaskInput) (*models.Task, error) {
	l, err := s.lists.FindByID(ctx, input.ListID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListNotFound
	}
	if err := s.checkAssignee(ctx, input.AssignedUserID); err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, userID, l, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	if err := s.authorizeAssignee(ctx, input.AssignedUserID, l); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, input.TagIDs, l.ProjectID)
	if err != nil {
		return nil, err
	}

	t := &models.Task{
		Name:           input.Name,
		DateToStart:    input.DateToStart,
		DateToFinish:   input.DateToFinish,
		Priority:       input.Priority,
		Description:    input.Description,
		ListID:         l.ID,
		ProjectID:      l.ProjectID,
		AssignedUserID: input.AssignedUserID,
		CreatorID:      userID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := s.tasks.SetTags(ctx, t.ID, input.TagIDs); err != nil {
		return nil, err
	}
	t.Tags = tags
	return t, nil
}

// Update rewrites the task's fields, possibly moving it to another list.
// Authorization runs against the target list's project. Requires DEVELOPER;
// the assignee rules match Create.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, input TaskInput) (*models.Task, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	l, err := s.lists.FindByID(ctx, input.ListID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListNotFound
	}
	if err := s.checkAssignee(ctx, input.AssignedUserID); err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, userID, l, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	if err := s.authorizeAssignee(ctx, input.AssignedUserID, l); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, input.TagIDs, l.ProjectID)
	if err != nil {
		return nil, err
	}

	t.Name = input.Name
	t.DateToStart = input.DateToStart
	t.DateToFinish = input.DateToFinish
	t.Priority = input.Priority
	t.Description = input.Description
	t.ListID = l.ID
	t.ProjectID = l.ProjectID
	t.AssignedUserID = input.AssignedUserID
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	if err := s.tasks.SetTags(ctx, t.ID, input.TagIDs); err != nil {
		return nil, err
	}
	t.Tags = tags
	return t, nil
}

// Delete removes the task. Requires DEVELOPER.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if err := s.guard.Authorize(ctx, userID, t, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) checkAssignee(ctx context.Context, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}
	u, err := s.users.FindByID(ctx, *assigneeID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return nil
}

// authorizeAssignee runs the second, independent authorization check for
// the referenced user. A grant for the acting principal does not imply one
// for the assignee.
func (s *TaskService) authorizeAssignee(ctx context.Context, assigneeID *int64, l *models.List) error {
	if assigneeID == nil {
		return nil
	}
	if err := s.guard.Authorize(ctx, *assigneeID, l, models.EffectiveDeveloper); err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			return ErrAssigneeNotEligible
		}
		return err
	}
	return nil
}

func (s *TaskService) resolveTags(ctx context.Context, tagIDs []int64, projectID int64) ([]models.Tag, error) {
	var tags []models.Tag
	for _, id := range tagIDs {
		tag, err := s.tags.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if tag == nil || tag.ProjectID != projectID {
			return nil, ErrTagNotFound
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
