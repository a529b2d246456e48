package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lampochky/tasktracker/internal/models"
)

func taskServiceFixture(guard *Guard) (*TaskService, *fakeTaskRepo) {
	list5 := &models.List{ID: 2, Name: "backlog", ProjectID: 5}
	tasks := &fakeTaskRepo{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.Task, error) {
			if id == 3 {
				return &models.Task{ID: 3, Name: "existing", ListID: 2, ProjectID: 5, CreatorID: 1}, nil
			}
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, t *models.Task) error { t.ID = 99; return nil },
		UpdateFunc: func(ctx context.Context, t *models.Task) error { return nil },
		DeleteFunc: func(ctx context.Context, id int64) error { return nil },
		SetTagsFunc: func(ctx context.Context, taskID int64, tagIDs []int64) error {
			return nil
		},
	}
	lists := &fakeListRepo{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.List, error) {
			if id == 2 {
				return list5, nil
			}
			return nil, nil
		},
	}
	tags := &fakeTagRepo{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.Tag, error) {
			if id == 10 {
				return &models.Tag{ID: 10, Name: "bug", ProjectID: 5}, nil
			}
			return nil, nil
		},
		ListByTaskFunc: func(ctx context.Context, taskID int64) ([]models.Tag, error) {
			return nil, nil
		},
	}
	users := &fakeUserRepo{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			if id == 1 || id == 2 || id == 7 {
				return &models.User{ID: id}, nil
			}
			return nil, nil
		},
	}
	return NewTaskService(tasks, lists, tags, users, guard), tasks
}

func validInput() TaskInput {
	return TaskInput{
		Name:         "new task",
		DateToStart:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DateToFinish: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Priority:     1,
		ListID:       2,
	}
}

func TestTaskGet_NotFoundBeforeAuthorization(t *testing.T) {
	// User 1 has no membership anywhere; a missing task must still be
	// reported as not-found, not as a denial.
	svc, _ := taskServiceFixture(guardFor(nil))
	_, err := svc.Get(context.Background(), 1, 42)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskGet_DeniedWithoutMembership(t *testing.T) {
	svc, _ := taskServiceFixture(guardFor(nil))
	_, err := svc.Get(context.Background(), 1, 3)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestTaskCreate_RequiresDeveloper(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankGuest},
	})
	svc, _ := taskServiceFixture(guard)

	_, err := svc.Create(context.Background(), 1, validInput())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for guest, got %v", err)
	}
}

func TestTaskCreate_Success(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
	})
	svc, _ := taskServiceFixture(guard)

	task, err := svc.Create(context.Background(), 1, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ProjectID != 5 {
		t.Errorf("expected project 5 from the list chain, got %d", task.ProjectID)
	}
	if task.CreatorID != 1 {
		t.Errorf("expected creator 1, got %d", task.CreatorID)
	}
}

func TestTaskCreate_MissingListReportedBeforePermissions(t *testing.T) {
	svc, _ := taskServiceFixture(guardFor(nil))
	input := validInput()
	input.ListID = 77

	_, err := svc.Create(context.Background(), 1, input)
	if !errors.Is(err, ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestTaskCreate_AssigneeCheckedIndependently(t *testing.T) {
	// User 1 is a developer; user 2 exists but holds nothing on project 5.
	// The actor's grant must not carry over to the assignee.
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
	})
	svc, _ := taskServiceFixture(guard)

	assignee := int64(2)
	input := validInput()
	input.AssignedUserID = &assignee

	_, err := svc.Create(context.Background(), 1, input)
	if !errors.Is(err, ErrAssigneeNotEligible) {
		t.Fatalf("expected ErrAssigneeNotEligible, got %v", err)
	}
}

func TestTaskCreate_GuestAssigneeNotEligible(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
		2: {5: models.RankGuest},
	})
	svc, _ := taskServiceFixture(guard)

	assignee := int64(2)
	input := validInput()
	input.AssignedUserID = &assignee

	_, err := svc.Create(context.Background(), 1, input)
	if !errors.Is(err, ErrAssigneeNotEligible) {
		t.Fatalf("expected ErrAssigneeNotEligible for guest assignee, got %v", err)
	}
}

func TestTaskCreate_DeveloperAssigneeAllowed(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
		2: {5: models.RankDeveloper},
	})
	svc, _ := taskServiceFixture(guard)

	assignee := int64(2)
	input := validInput()
	input.AssignedUserID = &assignee

	task, err := svc.Create(context.Background(), 1, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.AssignedUserID == nil || *task.AssignedUserID != 2 {
		t.Errorf("expected assignee 2, got %v", task.AssignedUserID)
	}
}

func TestTaskCreate_UnknownAssigneeReported(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
	})
	svc, _ := taskServiceFixture(guard)

	assignee := int64(1000)
	input := validInput()
	input.AssignedUserID = &assignee

	_, err := svc.Create(context.Background(), 1, input)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTaskCreate_ForeignTagRejected(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
	})
	svc, _ := taskServiceFixture(guard)

	input := validInput()
	input.TagIDs = []int64{55}

	_, err := svc.Create(context.Background(), 1, input)
	if !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestTaskUpdate_AuthorizedAgainstTargetList(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankDeveloper},
	})
	svc, _ := taskServiceFixture(guard)

	task, err := svc.Update(context.Background(), 1, 3, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "new task" {
		t.Errorf("expected updated name, got %q", task.Name)
	}
}

func TestTaskDelete_RequiresDeveloper(t *testing.T) {
	guard := guardFor(map[int64]map[int64]models.Rank{
		1: {5: models.RankGuest},
	})
	svc, _ := taskServiceFixture(guard)

	_, err := svc.Delete(context.Background(), 1, 3)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
