package service

import (
	"context"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
	"github.com/lampochky/tasktracker/internal/repository"
)

// MembershipRepository defines the persistence operations required by the
// membership service.
type MembershipRepository interface {
	// FindByUserAndProject returns the membership for the pair, or nil if
	// none exists.
	FindByUserAndProject(ctx context.Context, userID, projectID int64) (*models.Membership, error)
	// Create inserts a membership. It returns
	// repository.ErrDuplicateMembership when a row for the pair already
	// exists; the (user_id, project_id) uniqueness constraint makes this
	// the losing side of a concurrent invite.
	Create(ctx context.Context, m *models.Membership) error
	Update(ctx context.Context, m *models.Membership) error
	Delete(ctx context.Context, id int64) error
}

// MembershipService is the query surface over the user-project relation and
// the workflow that creates, confirms and withdraws invitations.
type MembershipService struct {
	repo MembershipRepository
}

// NewMembershipService constructs a MembershipService using the provided
// repository.
func NewMembershipService(repo MembershipRepository) *MembershipService {
	return &MembershipService{repo: repo}
}

// Find returns the membership for the pair, or nil if none exists.
func (s *MembershipService) Find(ctx context.Context, userID, projectID int64) (*models.Membership, error) {
	return s.repo.FindByUserAndProject(ctx, userID, projectID)
}

// EffectiveRank returns the rank granted for authorization purposes.
// It is NoRelation when no membership exists and also when one exists but
// is unconfirmed: a pending invitation grants no access, whatever role it
// carries. Every authorization decision goes through this function.
func (s *MembershipService) EffectiveRank(ctx context.Context, userID, projectID int64) (models.EffectiveRank, error) {
	m, err := s.repo.FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return models.NoRelation, err
	}
	if m == nil || !m.Confirmed {
		return models.NoRelation, nil
	}
	return m.Role.Effective(), nil
}

// Invite creates a pending membership for the invitee. It fails with
// ErrAlreadyMember when any row for the pair exists, whether pending or
// confirmed. The read-then-write sequence is optimistic: a concurrent
// invite losing the race at the uniqueness constraint reports
// ErrAlreadyMember as well. An invalid role is normalized to GUEST rather
// than persisted.
func (s *MembershipService) Invite(ctx context.Context, inviteeID, projectID int64, role models.Rank) (*models.Membership, error) {
	if !role.Valid() {
		role = models.RankGuest
	}
	existing, err := s.repo.FindByUserAndProject(ctx, inviteeID, projectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}
	m := &models.Membership{Role: role, Confirmed: false, UserID: inviteeID, ProjectID: projectID}
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicateMembership) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return m, nil
}

// Confirm activates a pending invitation. It fails with
// ErrInvitationNotFound when no row exists and ErrAlreadyMember when the
// membership is already confirmed.
func (s *MembershipService) Confirm(ctx context.Context, userID, projectID int64) error {
	m, err := s.pending(ctx, userID, projectID)
	if err != nil {
		return err
	}
	m.Confirmed = true
	return s.repo.Update(ctx, m)
}

// Decline withdraws a pending invitation, removing the row entirely.
// Failure modes match Confirm.
func (s *MembershipService) Decline(ctx context.Context, userID, projectID int64) error {
	m, err := s.pending(ctx, userID, projectID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, m.ID)
}

func (s *MembershipService) pending(ctx context.Context, userID, projectID int64) (*models.Membership, error) {
	m, err := s.repo.FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrInvitationNotFound
	}
	if m.Confirmed {
		return nil, ErrAlreadyMember
	}
	return m, nil
}

// AddOwner records the project creator as a confirmed admin, bypassing the
// invitation states.
func (s *MembershipService) AddOwner(ctx context.Context, userID, projectID int64) error {
	m := &models.Membership{Role: models.RankAdmin, Confirmed: true, UserID: userID, ProjectID: projectID}
	return s.repo.Create(ctx, m)
}
