package service

import (
	"context"

	"github.com/lampochky/tasktracker/internal/models"
)

// Func-field fakes for the repository interfaces consumed by the services.

type fakeUserRepo struct {
	FindByIDFunc              func(ctx context.Context, id int64) (*models.User, error)
	FindByEmailFunc           func(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmailFunc func(ctx context.Context, identifier string) (*models.User, error)
	CreateFunc                func(ctx context.Context, u *models.User) error
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.FindByEmailFunc(ctx, email)
}
func (f *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	return f.FindByUsernameOrEmailFunc(ctx, identifier)
}
func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	return f.CreateFunc(ctx, u)
}

type fakeProjectRepo struct {
	FindByIDFunc   func(ctx context.Context, id int64) (*models.Project, error)
	ListByUserFunc func(ctx context.Context, userID int64) ([]models.Project, error)
	CreateFunc     func(ctx context.Context, p *models.Project) error
	UpdateFunc     func(ctx context.Context, p *models.Project) error
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (f *fakeProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeProjectRepo) ListByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	return f.ListByUserFunc(ctx, userID)
}
func (f *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error {
	return f.CreateFunc(ctx, p)
}
func (f *fakeProjectRepo) Update(ctx context.Context, p *models.Project) error {
	return f.UpdateFunc(ctx, p)
}
func (f *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}

type fakeListRepo struct {
	FindByIDFunc      func(ctx context.Context, id int64) (*models.List, error)
	ListByProjectFunc func(ctx context.Context, projectID int64) ([]models.List, error)
	CreateFunc        func(ctx context.Context, l *models.List) error
	UpdateFunc        func(ctx context.Context, l *models.List) error
	DeleteFunc        func(ctx context.Context, id int64) error
}

func (f *fakeListRepo) FindByID(ctx context.Context, id int64) (*models.List, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeListRepo) ListByProject(ctx context.Context, projectID int64) ([]models.List, error) {
	return f.ListByProjectFunc(ctx, projectID)
}
func (f *fakeListRepo) Create(ctx context.Context, l *models.List) error {
	return f.CreateFunc(ctx, l)
}
func (f *fakeListRepo) Update(ctx context.Context, l *models.List) error {
	return f.UpdateFunc(ctx, l)
}
func (f *fakeListRepo) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}

type fakeTaskRepo struct {
	FindByIDFunc   func(ctx context.Context, id int64) (*models.Task, error)
	ListByListFunc func(ctx context.Context, listID int64) ([]models.Task, error)
	CreateFunc     func(ctx context.Context, t *models.Task) error
	UpdateFunc     func(ctx context.Context, t *models.Task) error
	DeleteFunc     func(ctx context.Context, id int64) error
	SetTagsFunc    func(ctx context.Context, taskID int64, tagIDs []int64) error
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeTaskRepo) ListByList(ctx context.Context, listID int64) ([]models.Task, error) {
	return f.ListByListFunc(ctx, listID)
}
func (f *fakeTaskRepo) Create(ctx context.Context, t *models.Task) error {
	return f.CreateFunc(ctx, t)
}
func (f *fakeTaskRepo) Update(ctx context.Context, t *models.Task) error {
	return f.UpdateFunc(ctx, t)
}
func (f *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}
func (f *fakeTaskRepo) SetTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	return f.SetTagsFunc(ctx, taskID, tagIDs)
}

type fakeTagRepo struct {
	FindByIDFunc      func(ctx context.Context, id int64) (*models.Tag, error)
	ListByProjectFunc func(ctx context.Context, projectID int64) ([]models.Tag, error)
	ListByTaskFunc    func(ctx context.Context, taskID int64) ([]models.Tag, error)
	CreateFunc        func(ctx context.Context, t *models.Tag) error
	UpdateFunc        func(ctx context.Context, t *models.Tag) error
	DeleteFunc        func(ctx context.Context, id int64) error
}

func (f *fakeTagRepo) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	return f.FindByIDFunc(ctx, id)
}
func (f *fakeTagRepo) ListByProject(ctx context.Context, projectID int64) ([]models.Tag, error) {
	return f.ListByProjectFunc(ctx, projectID)
}
func (f *fakeTagRepo) ListByTask(ctx context.Context, taskID int64) ([]models.Tag, error) {
	return f.ListByTaskFunc(ctx, taskID)
}
func (f *fakeTagRepo) Create(ctx context.Context, t *models.Tag) error {
	return f.CreateFunc(ctx, t)
}
func (f *fakeTagRepo) Update(ctx context.Context, t *models.Tag) error {
	return f.UpdateFunc(ctx, t)
}
func (f *fakeTagRepo) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}

// guardFor wires a guard over an in-memory membership store seeded with the
// given confirmed roles, keyed by user then project.
func guardFor(t map[int64]map[int64]models.Rank) *Guard {
	repo := newFakeMembershipRepo()
	for userID, projects := range t {
		for projectID, role := range projects {
			_ = repo.Create(context.Background(), &models.Membership{
				Role: role, Confirmed: true, UserID: userID, ProjectID: projectID,
			})
		}
	}
	return NewGuard(NewMembershipService(repo))
}
