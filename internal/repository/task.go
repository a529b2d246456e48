package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresTaskRepository implements task persistence using a PostgreSQL
// database. Task queries join the owning list so every loaded task carries
// the id of the project at the root of its ownership chain.
type PostgresTaskRepository struct {
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository with the
// given database connection.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

const taskSelect = `SELECT t.id, t.name, t.date_to_start, t.date_to_finish, t.priority,
	t.description, t.list_id, l.project_id, t.assigned_user_id, t.creator_id
	FROM task t INNER JOIN list l ON l.id = t.list_id`

func scanTask(scan func(dest ...interface{}) error) (*models.Task, error) {
	var t models.Task
	var assigned sql.NullInt64
	err := scan(&t.ID, &t.Name, &t.DateToStart, &t.DateToFinish, &t.Priority,
		&t.Description, &t.ListID, &t.ProjectID, &assigned, &t.CreatorID)
	if err != nil {
		return nil, err
	}
	if assigned.Valid {
		t.AssignedUserID = &assigned.Int64
	}
	return &t, nil
}

// FindByID returns the task with the given id, or nil if none exists.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	row := r.DB.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id)
	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

// ListByList returns all tasks in the given list.
func (r *PostgresTaskRepository) ListByList(ctx context.Context, listID int64) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, taskSelect+` WHERE t.list_id = $1 ORDER BY t.id`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Create inserts a new task and fills in its generated id.
func (r *PostgresTaskRepository) Create(ctx context.Context, t *models.Task) error {
	return r.DB.QueryRowContext(
		ctx,
		`INSERT INTO task (name, date_to_start, date_to_finish, priority, description,
		 list_id, assigned_user_id, creator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		t.Name, t.DateToStart, t.DateToFinish, t.Priority, t.Description,
		t.ListID, nullableID(t.AssignedUserID), t.CreatorID,
	).Scan(&t.ID)
}

// Update stores the task's mutable fields.
func (r *PostgresTaskRepository) Update(ctx context.Context, t *models.Task) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE task SET name = $1, date_to_start = $2, date_to_finish = $3,
		 priority = $4, description = $5, list_id = $6, assigned_user_id = $7
		 WHERE id = $8`,
		t.Name, t.DateToStart, t.DateToFinish, t.Priority, t.Description,
		t.ListID, nullableID(t.AssignedUserID), t.ID,
	)
	return err
}

// Delete removes the task and, by cascade, its messages and tag links.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM task WHERE id = $1`, id)
	return err
}

// SetTags replaces the set of tags attached to the task.
func (r *PostgresTaskRepository) SetTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tag_task WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO tag_task (tag_id, task_id) VALUES ($1, $2)`,
			tagID, taskID,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
