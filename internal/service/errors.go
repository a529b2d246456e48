// Package service implements the business logic of the task tracker:
// membership management, the authorization guard, and the operations on
// projects, lists, tasks, tags and messages.
package service

import "errors"

// Domain errors. Handlers translate these into HTTP statuses; anything else
// reaching a handler is an infrastructure error.
var (
	// ErrPermissionDenied means the principal's effective rank on the
	// target's project does not satisfy the operation's minimum.
	ErrPermissionDenied = errors.New("permissions not granted")

	// ErrAlreadyMember means an invitation or confirmation was attempted
	// for a pair that already has a membership row in the way.
	ErrAlreadyMember = errors.New("user is already a member")

	// ErrInvitationNotFound means a confirm or decline was attempted with
	// no pending invitation.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrAssigneeNotEligible means a task's assigned user does not hold
	// DEVELOPER on the task's project.
	ErrAssigneeNotEligible = errors.New("assigned user is not a project developer")

	// ErrUserExists means a registration collided with an existing
	// username or email.
	ErrUserExists = errors.New("user already exists")

	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrListNotFound    = errors.New("list not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrMessageNotFound = errors.New("message not found")
)
