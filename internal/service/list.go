package service

import (
	"context"

	"github.com/lampochky/tasktracker/internal/models"
)

// ListRepository defines the persistence operations required by the list
// service.
type ListRepository interface {
	FindByID(ctx context.Context, id int64) (*models.List, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.List, error)
	Create(ctx context.Context, l *models.List) error
	Update(ctx context.Context, l *models.List) error
	Delete(ctx context.Context, id int64) error
}

// ListService implements task-list operations.
type ListService struct {
	lists    ListRepository
	projects ProjectRepository
	guard    *Guard
}

// NewListService constructs a ListService.
func NewListService(lists ListRepository, projects ProjectRepository, guard *Guard) *ListService {
	return &ListService{lists: lists, projects: projects, guard: guard}
}

// Get returns the list. Requires GUEST.
func (s *ListService) Get(ctx context.Context, userID, listID int64) (*models.List, error) {
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
	return l, nil
}

// InProject returns all lists of a project. Requires GUEST.
func (s *ListService) InProject(ctx context.Context, userID, projectID int64) ([]models.List, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if err := s.guard.Authorize(ctx, userID, p, models.EffectiveGuest); err != nil {
		return nil, err
	}
	return s.lists.ListByProject(ctx, p.ID)
}

// Create adds a list to a project. Requires ADMIN on the target project,
// which is the parent container since the list itself does not exist yet.
func (s *ListService) Create(ctx context.Context, userID, projectID int64, name string) (*models.List, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if err := s.guard.Authorize(ctx, userID, p, models.EffectiveAdmin); err != nil {
		return nil, err
	}
	l := &models.List{Name: name, ProjectID: p.ID}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Update renames the list. Requires DEVELOPER.
func (s *ListService) Update(ctx context.Context, userID, listID int64, name string) (*models.List, error) {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListNotFound
	}
	if err := s.guard.Authorize(ctx, userID, l, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	l.Name = name
	if err := s.lists.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes the list and its tasks. Requires ADMIN.
func (s *ListService) Delete(ctx context.Context, userID, listID int64) (*models.List, error) {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListNotFound
	}
	if err := s.guard.Authorize(ctx, userID, l, models.EffectiveAdmin); err != nil {
		return nil, err
	}
	if err := s.lists.Delete(ctx, l.ID); err != nil {
		return nil, err
	}
	return l, nil
}
