package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskify/internal/auth"
	apperrors "taskify/internal/errors"
	"taskify/internal/model"
	"taskify/internal/pagination"
	"taskify/internal/service"
)

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, userID uint, input service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, userID uint, input service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, id, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockTaskService) ToggleComplete(ctx context.Context, id uuid.UUID, userID uint, completed bool) (*model.Task, error) {
	args := m.Called(ctx, id, userID, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, userID uint, filters service.ListFilters, p pagination.Params) (pagination.Page[model.Task], error) {
	args := m.Called(ctx, userID, filters, p)
	return args.Get(0).(pagination.Page[model.Task]), args.Error(1)
}

func (m *MockTaskService) ListToday(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[model.Task], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(pagination.Page[model.Task]), args.Error(1)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// What echo-jwt leaves in context after validating the bearer token.
	c.Set("user", &jwt.Token{Claims: &auth.Claims{UserID: 7, Email: "ann@x.com"}})
	return c, rec
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func TestTaskHandler_UpdateForeignTaskIs404(t *testing.T) {
	id := uuid.New()
	svc := new(MockTaskService)
	svc.On("Update", mock.Anything, id, uint(7), mock.Anything).Return(nil, apperrors.ErrTaskNotFound)

	c, _ := newTestContext(t, http.MethodPut, "/api/tasks/"+id.String(), `{"title":"x"}`)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := NewTaskHandler(svc).Update(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestTaskHandler_MalformedIDIs404(t *testing.T) {
	svc := new(MockTaskService)

	c, _ := newTestContext(t, http.MethodDelete, "/api/tasks/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := NewTaskHandler(svc).Delete(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_ListInvalidPriorityIs400(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("List", mock.Anything, uint(7), service.ListFilters{Priority: "URGENT"}, mock.Anything).
		Return(pagination.Page[model.Task]{}, apperrors.ErrInvalidPriority)

	c, _ := newTestContext(t, http.MethodGet, "/api/tasks?priority=URGENT", "")

	err := NewTaskHandler(svc).List(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestTaskHandler_CreateValidation(t *testing.T) {
	svc := new(MockTaskService)

	// Title is required.
	c, _ := newTestContext(t, http.MethodPost, "/api/tasks", `{"description":"no title"}`)
	err := NewTaskHandler(svc).Create(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_CreateOK(t *testing.T) {
	svc := new(MockTaskService)
	created := &model.Task{ID: uuid.New(), UserID: 7, Title: "Buy milk", Priority: model.PriorityMedium}
	svc.On("Create", mock.Anything, uint(7), mock.Anything).Return(created, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)
	err := NewTaskHandler(svc).Create(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Buy milk")
}
