// Package models defines the core data structures for users, projects and
// the resources a project owns.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// Username is the login name chosen by the user.
	Username string
	// Email is the unique address the token subject refers to.
	Email string
	// PasswordHash is the hashed password of the user.
	PasswordHash []byte
}

// Principal is the resolved identity of the current request. It is
// reconstructed from the request credential and never persisted.
type Principal struct {
	// UserID identifies the user the credential resolved to.
	UserID int64
	// Subject is the credential's subject claim.
	Subject string
}

// Project is the root of every resource ownership chain.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OwningProject returns the project's own identifier.
func (p *Project) OwningProject() int64 { return p.ID }

// List groups tasks within a project.
type List struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
}

// OwningProject returns the identifier of the project the list belongs to.
func (l *List) OwningProject() int64 { return l.ProjectID }

// Task is a unit of work inside a list.
type Task struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DateToStart  time.Time `json:"dateToStart"`
	DateToFinish time.Time `json:"dateToFinish"`
	Priority     int       `json:"priority"`
	Description  string    `json:"description"`
	ListID       int64     `json:"listId"`
	// ProjectID is resolved through the owning list when the task is loaded.
	ProjectID      int64  `json:"projectId"`
	AssignedUserID *int64 `json:"assignedUserId"`
	CreatorID      int64  `json:"creatorId"`
	Tags           []Tag  `json:"tags,omitempty"`
}

// OwningProject returns the identifier of the project the task belongs to,
// resolved through its list.
func (t *Task) OwningProject() int64 { return t.ProjectID }

// Tag labels tasks within a single project.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID int64  `json:"projectId"`
}

// OwningProject returns the identifier of the project the tag belongs to.
func (t *Tag) OwningProject() int64 { return t.ProjectID }

// Message is a comment attached to a task.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int64     `json:"userId"`
	TaskID    int64     `json:"taskId"`
	// ProjectID is resolved through the task and list when the message is loaded.
	ProjectID int64 `json:"projectId"`
}

// OwningProject returns the identifier of the project the message belongs
// to, resolved through its task and list.
func (m *Message) OwningProject() int64 { return m.ProjectID }

// Membership records a user's role and confirmation status within a project.
// At most one membership exists per (user, project) pair.
type Membership struct {
	ID        int64 `json:"id"`
	Role      Rank  `json:"role"`
	Confirmed bool  `json:"confirmed"`
	UserID    int64 `json:"userId"`
	ProjectID int64 `json:"projectId"`
}
