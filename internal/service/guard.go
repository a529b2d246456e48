package service

import (
	"context"

	"github.com/lampochky/tasktracker/internal/models"
)

// ProjectScoped is any resource that can name the project at the root of
// its ownership chain. Repositories populate the project id by following
// the authoritative parent references (task to list to project), never by
// any other field.
type ProjectScoped interface {
	OwningProject() int64
}

// RankSource supplies the effective rank used for authorization decisions.
type RankSource interface {
	EffectiveRank(ctx context.Context, userID, projectID int64) (models.EffectiveRank, error)
}

// Guard is the single authorization entry point. Every resource operation
// resolves its target's project and asks the guard whether the acting user
// holds at least the operation's minimum rank there.
type Guard struct {
	ranks RankSource
}

// NewGuard constructs a Guard reading ranks from the provided source.
func NewGuard(ranks RankSource) *Guard {
	return &Guard{ranks: ranks}
}

// Authorize checks that the user's effective rank on the resource's project
// satisfies min. It returns ErrPermissionDenied on an insufficient rank and
// propagates storage errors unchanged. Whether the resource exists must be
// settled before calling: not-found takes precedence over denial.
func (g *Guard) Authorize(ctx context.Context, userID int64, resource ProjectScoped, min models.EffectiveRank) error {
	rank, err := g.ranks.EffectiveRank(ctx, userID, resource.OwningProject())
	if err != nil {
		return err
	}
	if !rank.Satisfies(min) {
		return ErrPermissionDenied
	}
	return nil
}
