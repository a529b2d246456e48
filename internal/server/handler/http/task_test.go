package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lampochky/tasktracker/internal/models"
	"github.com/lampochky/tasktracker/internal/service"
)

// fakeTaskService implements TaskService with a fixed outcome.
type fakeTaskService struct {
	task *models.Task
	err  error
}

func (f *fakeTaskService) Get(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return f.task, f.err
}
func (f *fakeTaskService) InList(ctx context.Context, userID, listID int64) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Task{*f.task}, nil
}
func (f *fakeTaskService) Create(ctx context.Context, userID int64, input service.TaskInput) (*models.Task, error) {
	return f.task, f.err
}
func (f *fakeTaskService) Update(ctx context.Context, userID, taskID int64, input service.TaskInput) (*models.Task, error) {
	return f.task, f.err
}
func (f *fakeTaskService) Delete(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return f.task, f.err
}

const taskBody = `{"name":"new task","listId":2,"priority":1}`

func TestTaskHandler_Create_StatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		// Entities referenced by the payload surface as 422, not 404.
		{"missing list", service.ErrListNotFound, http.StatusUnprocessableEntity},
		{"missing assignee", service.ErrUserNotFound, http.StatusUnprocessableEntity},
		{"foreign tag", service.ErrTagNotFound, http.StatusUnprocessableEntity},
		{"ineligible assignee", service.ErrAssigneeNotEligible, http.StatusUnprocessableEntity},
		{"guest actor", service.ErrPermissionDenied, http.StatusForbidden},
		{"success", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &TaskHandler{TaskService: &fakeTaskService{
				task: &models.Task{ID: 9, Name: "new task", ListID: 2, ProjectID: 5},
				err:  tt.err,
			}}

			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest("POST", "/data/task", taskBody, ""))

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestTaskHandler_Update_MissingTaskStays404(t *testing.T) {
	// The task id comes from the request path, so its absence is a 404 even
	// though payload references map to 422.
	h := &TaskHandler{TaskService: &fakeTaskService{err: service.ErrTaskNotFound}}

	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest("PUT", "/data/task/9", taskBody, "9"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaskHandler_Get_InvalidID(t *testing.T) {
	h := &TaskHandler{TaskService: &fakeTaskService{}}

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest("GET", "/data/task/abc", "", "abc"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
