package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lampochky/tasktracker/internal/auth"
	"github.com/lampochky/tasktracker/internal/models"
)

type fakeUserLookup struct {
	user *models.User
	err  error
}

func (f *fakeUserLookup) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.user, f.err
}

func TestTokenAuth(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	validToken, err := tokens.Issue("alice@example.com", time.Now())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name          string
		header        string
		users         *fakeUserLookup
		expectedCode  int
		expectHandler bool
	}{
		{
			name:         "missing header",
			header:       "",
			users:        &fakeUserLookup{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "standard bearer prefix rejected",
			header:       "Bearer " + validToken,
			users:        &fakeUserLookup{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "garbage token",
			header:       "Bearer_not.a.token",
			users:        &fakeUserLookup{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "subject no longer exists",
			header:       "Bearer_" + validToken,
			users:        &fakeUserLookup{user: nil},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "storage failure",
			header:       "Bearer_" + validToken,
			users:        &fakeUserLookup{err: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:          "valid credential",
			header:        "Bearer_" + validToken,
			users:         &fakeUserLookup{user: &models.User{ID: 1, Email: "alice@example.com"}},
			expectedCode:  http.StatusOK,
			expectHandler: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := auth.NewCredentialResolver(tokens, tt.users)

			var seen *models.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetPrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/data/project/all", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			TokenAuth(resolver)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectHandler {
				if seen == nil {
					t.Fatal("expected principal in handler context")
				}
				if seen.UserID != 1 || seen.Subject != "alice@example.com" {
					t.Errorf("unexpected principal: %+v", seen)
				}
			} else if seen != nil {
				t.Errorf("handler must not run on failure, saw principal %+v", seen)
			}
		})
	}
}
