package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lampochky/tasktracker/internal/auth"
	"github.com/lampochky/tasktracker/internal/models"
	"github.com/lampochky/tasktracker/internal/repository"
)

// UserRepository defines the persistence operations required by services
// that look up or create users.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByUsernameOrEmail resolves an invite identifier to a user.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	// Create inserts a user; repository.ErrDuplicateUser signals a taken
	// username or email.
	Create(ctx context.Context, u *models.User) error
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  UserRepository
	tokens *auth.TokenService
	now    func() time.Time
}

// NewAuthService constructs an AuthService issuing tokens from tokens and
// persisting users through users.
func NewAuthService(users UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// Register creates a user with a bcrypt password hash and returns the user
// together with a fresh token. Fails with ErrUserExists when the username
// or email is taken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}
	token, err := s.tokens.Issue(u.Email, s.now())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the password for email and returns the user with a fresh
// token. Every failure cause, unknown email or wrong password alike, is
// reported as auth.ErrAuthentication.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", auth.ErrAuthentication
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, "", auth.ErrAuthentication
	}
	token, err := s.tokens.Issue(u.Email, s.now())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
