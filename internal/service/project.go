package service

import (
	"context"

	"github.com/lampochky/tasktracker/internal/models"
)

// ProjectRepository defines the persistence operations required by the
// project service.
type ProjectRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	// ListByUser returns the projects where the user holds a confirmed
	// membership.
	ListByUser(ctx context.Context, userID int64) ([]models.Project, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectService implements project operations including the invitation
// endpoints.
type ProjectService struct {
	projects    ProjectRepository
	users       UserRepository
	memberships *MembershipService
	guard       *Guard
}

// NewProjectService constructs a ProjectService.
func NewProjectService(projects ProjectRepository, users UserRepository, memberships *MembershipService, guard *Guard) *ProjectService {
	return &ProjectService{projects: projects, users: users, memberships: memberships, guard: guard}
}

// Get returns the project together with the caller's effective rank on it.
// Requires GUEST.
func (s *ProjectService) Get(ctx context.Context, userID, projectID int64) (*models.Project, models.EffectiveRank, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, models.NoRelation, err
	}
	if p == nil {
		return nil, models.NoRelation, ErrProjectNotFound
	}
	if err := s.guard.Authorize(ctx, userID, p, models.EffectiveGuest); err != nil {
		return nil, models.NoRelation, err
	}
	rank, err := s.memberships.EffectiveRank(ctx, userID, p.ID)
	if err != nil {
		return nil, models.NoRelation, err
	}
	return p, rank, nil
}

// All returns the projects the caller is a confirmed member of.
func (s *ProjectService) All(ctx context.Context, userID int64) ([]models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// Create stores a new project and records the creator as a confirmed admin.
func (s *ProjectService) Create(ctx context.Context, userID int64, name string) (*models.Project, error) {
	p := &models.Project{Name: name}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.memberships.AddOwner(ctx, userID, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Update renames the project. Requires ADMIN.
func (s *ProjectService) Update(ctx context.Context, userID, projectID int64, name string) (*models.Project, error) {
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
	p.Name = name
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project and everything it owns. Requires ADMIN.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID int64) (*models.Project, error) {
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
	if err := s.projects.Delete(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Invite creates a pending membership for the user named by identifier
// (username or email). The acting user must hold ADMIN on the project; the
// invitee must have no existing relation. Both not-found cases are checked
// before the permission check.
func (s *ProjectService) Invite(ctx context.Context, actorID, projectID int64, identifier string, role models.Rank) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProjectNotFound
	}
	invitee, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return err
	}
	if invitee == nil {
		return ErrUserNotFound
	}
	if err := s.guard.Authorize(ctx, actorID, p, models.EffectiveAdmin); err != nil {
		return err
	}
	_, err = s.memberships.Invite(ctx, invitee.ID, p.ID, role)
	return err
}

// Answer resolves the caller's pending invitation to the project: confirm
// activates it, decline removes it.
func (s *ProjectService) Answer(ctx context.Context, userID, projectID int64, confirm bool) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProjectNotFound
	}
	if confirm {
		return s.memberships.Confirm(ctx, userID, p.ID)
	}
	return s.memberships.Decline(ctx, userID, p.ID)
}
