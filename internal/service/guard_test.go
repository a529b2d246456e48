package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lampochky/tasktracker/internal/models"
)

func TestGuard_NoMembershipDeniesGuest(t *testing.T) {
	repo := newFakeMembershipRepo()
	guard := NewGuard(NewMembershipService(repo))
	task := &models.Task{ID: 1, ProjectID: 5}

	err := guard.Authorize(context.Background(), 1, task, models.EffectiveGuest)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestGuard_InvitationFlowGatesAccess(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMembershipRepo()
	memberships := NewMembershipService(repo)
	guard := NewGuard(memberships)
	task := &models.Task{ID: 1, ProjectID: 5}

	// Admin invites user 2 as DEVELOPER; the pending row grants nothing.
	if _, err := memberships.Invite(ctx, 2, 5, models.RankDeveloper); err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if err := guard.Authorize(ctx, 2, task, models.EffectiveGuest); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("unconfirmed membership must deny, got %v", err)
	}

	// After confirming, the stored role applies.
	if err := memberships.Confirm(ctx, 2, 5); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := guard.Authorize(ctx, 2, task, models.EffectiveDeveloper); err != nil {
		t.Fatalf("confirmed developer must pass, got %v", err)
	}
	if err := guard.Authorize(ctx, 2, task, models.EffectiveAdmin); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("developer must not satisfy ADMIN, got %v", err)
	}
}

func TestGuard_ResolvesProjectThroughOwnershipChain(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMembershipRepo()
	memberships := NewMembershipService(repo)
	guard := NewGuard(memberships)

	if err := memberships.AddOwner(ctx, 1, 5); err != nil {
		t.Fatalf("add owner failed: %v", err)
	}

	// The same membership answers for every resource under project 5.
	resources := []ProjectScoped{
		&models.Project{ID: 5},
		&models.List{ID: 2, ProjectID: 5},
		&models.Task{ID: 3, ListID: 2, ProjectID: 5},
		&models.Tag{ID: 4, ProjectID: 5},
		&models.Message{ID: 6, TaskID: 3, ProjectID: 5},
	}
	for _, res := range resources {
		if err := guard.Authorize(ctx, 1, res, models.EffectiveAdmin); err != nil {
			t.Errorf("owner denied on %T: %v", res, err)
		}
	}

	// A different project under the same user stays unreachable.
	other := &models.Task{ID: 9, ProjectID: 6}
	if err := guard.Authorize(ctx, 1, other, models.EffectiveGuest); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected denial on foreign project, got %v", err)
	}
}

type failingRankSource struct{ err error }

func (f failingRankSource) EffectiveRank(ctx context.Context, userID, projectID int64) (models.EffectiveRank, error) {
	return models.NoRelation, f.err
}

func TestGuard_StorageErrorIsNotADenial(t *testing.T) {
	storageErr := errors.New("storage down")
	guard := NewGuard(failingRankSource{err: storageErr})

	err := guard.Authorize(context.Background(), 1, &models.Project{ID: 5}, models.EffectiveGuest)
	if !errors.Is(err, storageErr) || errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected raw storage error, got %v", err)
	}
}
