package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staffpanel/internal/entity"
	"staffpanel/internal/repository"
	"staffpanel/internal/session"
	"staffpanel/internal/view"
)

func testEnv(t *testing.T) (*Responder, *session.Manager) {
	t.Helper()

	views, err := view.New()
	require.NoError(t, err)

	sessions := session.NewManager([]byte("0123456789abcdef0123456789abcdef"), zap.NewNop())
	t.Cleanup(sessions.Close)

	return NewResponder(views, sessions, zap.NewNop()), sessions
}

// withCookies carries the session cookie from a previous response.
func withCookies(req *http.Request, res *httptest.ResponseRecorder) *http.Request {
	if res != nil {
		for _, c := range res.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	return req
}

type stubDepartments struct {
	listFn    func(ctx context.Context, params repository.ListParams) (repository.Page[entity.Department], error)
	listAllFn func(ctx context.Context) ([]entity.Department, error)
	getFn     func(ctx context.Context, id int) (entity.Department, error)
	createFn  func(ctx context.Context, department entity.Department) (entity.Department, error)
	updateFn  func(ctx context.Context, id int, department entity.Department) (entity.Department, error)
	deleteFn  func(ctx context.Context, id int) error
	countFn   func(ctx context.Context) (int, error)
}

func (s *stubDepartments) List(ctx context.Context, params repository.ListParams) (repository.Page[entity.Department], error) {
	if s.listFn == nil {
		return repository.Page[entity.Department]{Items: []entity.Department{}, Page: 1, Limit: 10}, nil
	}
	return s.listFn(ctx, params)
}

func (s *stubDepartments) ListAll(ctx context.Context) ([]entity.Department, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *stubDepartments) Get(ctx context.Context, id int) (entity.Department, error) {
	if s.getFn == nil {
		return entity.Department{ID: id}, nil
	}
	return s.getFn(ctx, id)
}

func (s *stubDepartments) Create(ctx context.Context, department entity.Department) (entity.Department, error) {
	if s.createFn == nil {
		department.ID = 1
		return department, nil
	}
	return s.createFn(ctx, department)
}

func (s *stubDepartments) Update(ctx context.Context, id int, department entity.Department) (entity.Department, error) {
	if s.updateFn == nil {
		department.ID = id
		return department, nil
	}
	return s.updateFn(ctx, id, department)
}

func (s *stubDepartments) Delete(ctx context.Context, id int) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubDepartments) CountAll(ctx context.Context) (int, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type stubEmployees struct {
	listFn   func(ctx context.Context, params repository.ListParams) (repository.Page[entity.Employee], error)
	getFn    func(ctx context.Context, id int) (entity.Employee, error)
	createFn func(ctx context.Context, employee entity.Employee) (entity.Employee, error)
	updateFn func(ctx context.Context, id int, employee entity.Employee) (entity.Employee, error)
	deleteFn func(ctx context.Context, id int) error
	countFn  func(ctx context.Context) (int, error)
}

func (s *stubEmployees) List(ctx context.Context, params repository.ListParams) (repository.Page[entity.Employee], error) {
	if s.listFn == nil {
		return repository.Page[entity.Employee]{Items: []entity.Employee{}, Page: 1, Limit: 10}, nil
	}
	return s.listFn(ctx, params)
}

func (s *stubEmployees) Get(ctx context.Context, id int) (entity.Employee, error) {
	if s.getFn == nil {
		return entity.Employee{ID: id}, nil
	}
	return s.getFn(ctx, id)
}

func (s *stubEmployees) Create(ctx context.Context, employee entity.Employee) (entity.Employee, error) {
	if s.createFn == nil {
		employee.ID = 1
		return employee, nil
	}
	return s.createFn(ctx, employee)
}

func (s *stubEmployees) Update(ctx context.Context, id int, employee entity.Employee) (entity.Employee, error) {
	if s.updateFn == nil {
		employee.ID = id
		return employee, nil
	}
	return s.updateFn(ctx, id, employee)
}

func (s *stubEmployees) Delete(ctx context.Context, id int) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubEmployees) CountAll(ctx context.Context) (int, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type stubCredentials struct {
	authenticateFn func(ctx context.Context, username, password string) (entity.SessionUser, error)
}

func (s *stubCredentials) Authenticate(ctx context.Context, username, password string) (entity.SessionUser, error) {
	if s.authenticateFn == nil {
		return entity.SessionUser{}, nil
	}
	return s.authenticateFn(ctx, username, password)
}
