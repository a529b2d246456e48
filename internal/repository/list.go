package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresListRepository implements list persistence using a PostgreSQL
// database.
type PostgresListRepository struct {
	DB *sql.DB
}

// NewPostgresListRepository creates a new PostgresListRepository with the
// given database connection.
func NewPostgresListRepository(db *sql.DB) *PostgresListRepository {
	return &PostgresListRepository{DB: db}
}

// FindByID returns the list with the given id, or nil if none exists.
func (r *PostgresListRepository) FindByID(ctx context.Context, id int64) (*models.List, error) {
	var l models.List
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name, project_id FROM list WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.Name, &l.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByProject returns all lists in the given project.
func (r *PostgresListRepository) ListByProject(ctx context.Context, projectID int64) ([]models.List, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, name, project_id FROM list WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.Name, &l.ProjectID); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// Create inserts a new list and fills in its generated id.
func (r *PostgresListRepository) Create(ctx context.Context, l *models.List) error {
	return r.DB.QueryRowContext(
		ctx,
		`INSERT INTO list (name, project_id) VALUES ($1, $2) RETURNING id`,
		l.Name, l.ProjectID,
	).Scan(&l.ID)
}

// Update stores the list's mutable fields.
func (r *PostgresListRepository) Update(ctx context.Context, l *models.List) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE list SET name = $1 WHERE id = $2`,
		l.Name, l.ID,
	)
	return err
}

// Delete removes the list and, by cascade, its tasks.
func (r *PostgresListRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM list WHERE id = $1`, id)
	return err
}
