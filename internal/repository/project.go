package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresProjectRepository implements project persistence using a
// PostgreSQL database.
type PostgresProjectRepository struct {
	DB *sql.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository with
// the given database connection.
func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

// FindByID returns the project with the given id, or nil if none exists.
func (r *PostgresProjectRepository) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	var p models.Project
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name FROM project WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser returns all projects where the user holds a confirmed membership.
func (r *PostgresProjectRepository) ListByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT p.id, p.name FROM project p
		 INNER JOIN user_project up ON up.project_id = p.id
		 WHERE up.user_id = $1 AND up.confirmed = TRUE
		 ORDER BY p.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Create inserts a new project and fills in its generated id.
func (r *PostgresProjectRepository) Create(ctx context.Context, p *models.Project) error {
	return r.DB.QueryRowContext(
		ctx,
		`INSERT INTO project (name) VALUES ($1) RETURNING id`,
		p.Name,
	).Scan(&p.ID)
}

// Update stores the project's mutable fields.
func (r *PostgresProjectRepository) Update(ctx context.Context, p *models.Project) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE project SET name = $1 WHERE id = $2`,
		p.Name, p.ID,
	)
	return err
}

// Delete removes the project. Lists, tasks, tags, messages and memberships
// under it are removed by foreign-key cascade.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM project WHERE id = $1`, id)
	return err
}
