// Package http provides the HTTP handlers for the task tracker API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lampochky/tasktracker/internal/auth"
	"github.com/lampochky/tasktracker/internal/middleware"
	"github.com/lampochky/tasktracker/internal/models"
	"github.com/lampochky/tasktracker/internal/service"
)

// principal returns the authenticated principal or writes 401 when the
// middleware did not run for this route.
func principal(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	p := middleware.GetPrincipalFromContext(r.Context())
	if p == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return p, true
}

// statusFor maps a service error to its HTTP status. Not-found conditions
// take precedence over denials because the services report them first.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrListNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvitationNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrAssigneeNotEligible),
		errors.Is(err, service.ErrUserExists):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error message with the status derived from err. Internal
// errors are masked so infrastructure details never reach the client.
func fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	http.Error(w, msg, status)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// queryID parses the ?id= query parameter.
func queryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	return id, err == nil
}
