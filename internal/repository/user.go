package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lampochky/tasktracker/internal/models"
)

// PostgresUserRepository implements user persistence using a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, username, email, password_hash`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns the user with the given id, or nil if none exists.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.DB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
}

// FindByEmail returns the user with the given email, or nil if none exists.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.DB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
}

// FindByUsernameOrEmail returns the user whose username or email equals
// identifier, or nil if none exists.
func (r *PostgresUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	return scanUser(r.DB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`,
		identifier,
	))
}

// Create inserts a new user and fills in its generated id.
// Returns ErrDuplicateUser if the username or email is already taken.
func (r *PostgresUserRepository) Create(ctx context.Context, u *models.User) error {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.Email, u.PasswordHash,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateUser
	}
	return err
}
