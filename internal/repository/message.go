package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresMessageRepository implements message persistence using a
// PostgreSQL database. Message queries join the owning task and list so
// every loaded message carries the id of its project.
type PostgresMessageRepository struct {
	DB *sql.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository with
// the given database connection.
func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

const messageSelect = `SELECT m.id, m.text, m.time, m.user_id, m.task_id, l.project_id
	FROM message m
	INNER JOIN task t ON t.id = m.task_id
	INNER JOIN list l ON l.id = t.list_id`

// FindByID returns the message with the given id, or nil if none exists.
func (r *PostgresMessageRepository) FindByID(ctx context.Context, id int64) (*models.Message, error) {
	var m models.Message
	err := r.DB.QueryRowContext(ctx, messageSelect+` WHERE m.id = $1`, id).
		Scan(&m.ID, &m.Text, &m.CreatedAt, &m.UserID, &m.TaskID, &m.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByTask returns all messages attached to the given task, oldest first.
func (r *PostgresMessageRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(ctx, messageSelect+` WHERE m.task_id = $1 ORDER BY m.time, m.id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Text, &m.CreatedAt, &m.UserID, &m.TaskID, &m.ProjectID); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Create inserts a new message and fills in its generated id.
func (r *PostgresMessageRepository) Create(ctx context.Context, m *models.Message) error {
	return r.DB.QueryRowContext(
		ctx,
		`INSERT INTO message (text, time, user_id, task_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Text, m.CreatedAt, m.UserID, m.TaskID,
	).Scan(&m.ID)
}

// Update stores the message's mutable fields.
func (r *PostgresMessageRepository) Update(ctx context.Context, m *models.Message) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE message SET text = $1 WHERE id = $2`,
		m.Text, m.ID,
	)
	return err
}

// Delete removes the message.
func (r *PostgresMessageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM message WHERE id = $1`, id)
	return err
}
