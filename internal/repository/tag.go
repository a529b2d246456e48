package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresTagRepository implements tag persistence using a PostgreSQL
// database.
type PostgresTagRepository struct {
	DB *sql.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository with the
// given database connection.
func NewPostgresTagRepository(db *sql.DB) *PostgresTagRepository {
	return &PostgresTagRepository{DB: db}
}

// FindByID returns the tag with the given id, or nil if none exists.
func (r *PostgresTagRepository) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	var t models.Tag
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name, project_id FROM tag WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns all tags in the given project.
func (r *PostgresTagRepository) ListByProject(ctx context.Context, projectID int64) ([]models.Tag, error) {
	return r.list(ctx, `SELECT id, name, project_id FROM tag WHERE project_id = $1 ORDER BY id`, projectID)
}

// ListByTask returns all tags attached to the given task.
func (r *PostgresTagRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Tag, error) {
	return r.list(ctx,
		`SELECT t.id, t.name, t.project_id FROM tag t
		 INNER JOIN tag_task tt ON tt.tag_id = t.id
		 WHERE tt.task_id = $1 ORDER BY t.id`,
		taskID)
}

func (r *PostgresTagRepository) list(ctx context.Context, query string, arg int64) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.ProjectID); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Create inserts a new tag and fills in its generated id.
func (r *PostgresTagRepository) Create(ctx context.Context, t *models.Tag) error {
	return r.DB.QueryRowContext(
		ctx,
		`INSERT INTO tag (name, project_id) VALUES ($1, $2) RETURNING id`,
		t.Name, t.ProjectID,
	).Scan(&t.ID)
}

// Update stores the tag's mutable fields.
func (r *PostgresTagRepository) Update(ctx context.Context, t *models.Tag) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE tag SET name = $1 WHERE id = $2`,
		t.Name, t.ID,
	)
	return err
}

// Delete removes the tag and, by cascade, its task links.
func (r *PostgresTagRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM tag WHERE id = $1`, id)
	return err
}
