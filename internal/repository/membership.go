package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresMembershipRepository implements membership persistence using a
// PostgreSQL database. The user_project table carries a uniqueness
// constraint on (user_id, project_id); concurrent inserts for the same pair
// surface as ErrDuplicateMembership.
type PostgresMembershipRepository struct {
	DB *sql.DB
}

// NewPostgresMembershipRepository creates a new PostgresMembershipRepository
// with the given database connection.
func NewPostgresMembershipRepository(db *sql.DB) *PostgresMembershipRepository {
	return &PostgresMembershipRepository{DB: db}
}

// FindByUserAndProject returns the membership for the (user, project) pair,
// or nil if none exists.
func (r *PostgresMembershipRepository) FindByUserAndProject(ctx context.Context, userID, projectID int64) (*models.Membership, error) {
	var m models.Membership
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, role, confirmed, user_id, project_id FROM user_project
		 WHERE user_id = $1 AND project_id = $2`,
		userID, projectID,
	).Scan(&m.ID, &m.Role, &m.Confirmed, &m.UserID, &m.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new membership and fills in its generated id.
// Returns ErrDuplicateMembership when a row for the pair already exists.
func (r *PostgresMembershipRepository) Create(ctx context.Context, m *models.Membership) error {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO user_project (role, confirmed, user_id, project_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Role, m.Confirmed, m.UserID, m.ProjectID,
	).Scan(&m.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateMembership
	}
	return err
}

// Update stores the membership's mutable fields.
func (r *PostgresMembershipRepository) Update(ctx context.Context, m *models.Membership) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE user_project SET role = $1, confirmed = $2 WHERE id = $3`,
		m.Role, m.Confirmed, m.ID,
	)
	return err
}

// Delete removes the membership row by id.
func (r *PostgresMembershipRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM user_project WHERE id = $1`, id)
	return err
}
