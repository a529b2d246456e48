package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lampochky/tasktracker/internal/models"
)

// bearerPrefix is the credential prefix expected in the Authorization
// header. Note the underscore: "Bearer_<token>", not "Bearer <token>".
const bearerPrefix = "Bearer_"

// ErrAuthentication is returned for every failed identity resolution,
// regardless of which part of the credential was wrong.
var ErrAuthentication = errors.New("authentication failed")

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	// FindByEmail returns the user with the given email, or nil if none exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// CredentialResolver turns a request credential into a Principal.
type CredentialResolver struct {
	tokens *TokenService
	users  UserLookup
	// now supplies the current instant for validity checks.
	now func() time.Time
}

// NewCredentialResolver builds a resolver validating tokens against tokens
// and resolving subjects through users.
func NewCredentialResolver(tokens *TokenService, users UserLookup) *CredentialResolver {
	return &CredentialResolver{tokens: tokens, users: users, now: time.Now}
}

// ExtractToken returns the token carried by an Authorization header value.
// A missing header or any prefix other than "Bearer_" yields false.
func ExtractToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}

// ResolveIdentity validates token and resolves its subject to a Principal.
// It fails with ErrAuthentication when the token is invalid or when no user
// exists for the subject; a token can outlive its user's record. Storage
// errors propagate unchanged.
func (r *CredentialResolver) ResolveIdentity(ctx context.Context, token string) (*models.Principal, error) {
	if !r.tokens.IsCurrentlyValid(token, r.now()) {
		return nil, ErrAuthentication
	}
	subject, err := r.tokens.ResolveSubject(token)
	if err != nil {
		return nil, ErrAuthentication
	}
	user, err := r.users.FindByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthentication
	}
	return &models.Principal{UserID: user.ID, Subject: subject}, nil
}
