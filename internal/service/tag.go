package service

import (
	"context"

	"github.com/lampochky/tasktracker/internal/models"
)

// TagService implements tag operations.
type TagService struct {
	tags     TagRepository
	projects ProjectRepository
	guard    *Guard
}

// NewTagService constructs a TagService.
func NewTagService(tags TagRepository, projects ProjectRepository, guard *Guard) *TagService {
	return &TagService{tags: tags, projects: projects, guard: guard}
}

// Get returns the tag. Requires GUEST.
func (s *TagService) Get(ctx context.Context, userID, tagID int64) (*models.Tag, error) {
	t, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTagNotFound
	}
	if err := s.guard.Authorize(ctx, userID, t, models.EffectiveGuest); err != nil {
		return nil, err
	}
	return t, nil
}

// InProject returns all tags of a project. Requires GUEST.
func (s *TagService) InProject(ctx context.Context, userID, projectID int64) ([]models.Tag, error) {
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
	return s.tags.ListByProject(ctx, p.ID)
}

// Create adds a tag to a project. Requires DEVELOPER on the target project.
func (s *TagService) Create(ctx context.Context, userID, projectID int64, name string) (*models.Tag, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if err := s.guard.Authorize(ctx, userID, p, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	t := &models.Tag{Name: name, ProjectID: p.ID}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update renames the tag. Requires DEVELOPER.
func (s *TagService) Update(ctx context.Context, userID, tagID int64, name string) (*models.Tag, error) {
	t, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTagNotFound
	}
	if err := s.guard.Authorize(ctx, userID, t, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	t.Name = name
	if err := s.tags.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the tag from the project and from every task carrying it.
// Requires DEVELOPER.
func (s *TagService) Delete(ctx context.Context, userID, tagID int64) (*models.Tag, error) {
	t, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTagNotFound
	}
	if err := s.guard.Authorize(ctx, userID, t, models.EffectiveDeveloper); err != nil {
		return nil, err
	}
	if err := s.tags.Delete(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}
