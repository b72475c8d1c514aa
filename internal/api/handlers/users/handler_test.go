package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/users"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/users/models"
	"github.com/m04kA/SMC-ShopAdmin/pkg/logger"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, search string, page domain.Page) (*models.UserListResponse, error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserListResponse), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) Options(ctx context.Context) ([]models.UserOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserOption), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int64) (*models.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func newTestHandler() (*Handler, *MockUserService) {
	svc := new(MockUserService)
	return NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelDebug)), svc
}

func TestHandler_List(t *testing.T) {
	h, svc := newTestHandler()
	page := domain.NewPage(2, domain.DefaultPageSize)
	svc.On("List", mock.Anything, "ana", page).Return(&models.UserListResponse{
		Users:      []models.UserResponse{{ID: 11, Name: "Ana"}},
		Pagination: domain.NewPageInfo(page, 11, 1),
	}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/users?search=ana&page=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["data"], 1)
	assert.NotNil(t, body["pagination"])
	svc.AssertExpectations(t)
}

func TestHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMock  func(*MockUserService)
		wantStatus int
	}{
		{
			name: "found",
			id:   "5",
			setupMock: func(m *MockUserService) {
				m.On("GetByID", mock.Anything, int64(5)).Return(&models.UserResponse{ID: 5}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   "6",
			setupMock: func(m *MockUserService) {
				m.On("GetByID", mock.Anything, int64(6)).Return(nil, users.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			id:         "abc",
			setupMock:  func(m *MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "internal error",
			id:   "7",
			setupMock: func(m *MockUserService) {
				m.On("GetByID", mock.Anything, int64(7)).Return(nil, users.ErrInternal)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler()
			tt.setupMock(svc)

			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/admin/users/"+tt.id, nil), map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()
			h.Get(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_InternalErrorLogsRequestID(t *testing.T) {
	var logs bytes.Buffer
	svc := new(MockUserService)
	h := NewHandler(svc, logger.NewWithWriter(&logs, logger.LevelDebug))
	svc.On("GetByID", mock.Anything, int64(7)).Return(nil, users.ErrInternal)

	req := httptest.NewRequest(http.MethodGet, "/admin/users/7", nil)
	req = req.WithContext(middleware.WithRequestID(req.Context(), "3f2b8c1e-9d4a-4c6b-8e2f-1a7d5c9b0e44"))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "GET /admin/users/{id} - Internal error (request_id=3f2b8c1e-9d4a-4c6b-8e2f-1a7d5c9b0e44)")
	svc.AssertExpectations(t)
}

func TestHandler_Create(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		h, svc := newTestHandler()

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(`{"name":"","email":"bad","password":"123"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		h, svc := newTestHandler()
		svc.On("Create", mock.Anything, mock.AnythingOfType("*models.CreateUserRequest")).
			Return(nil, fmt.Errorf("%w: Create", users.ErrEmailTaken))

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/admin/users",
			strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"secret123"}`)))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), msgEmailTaken)
	})

	t.Run("created", func(t *testing.T) {
		h, svc := newTestHandler()
		svc.On("Create", mock.Anything, &models.CreateUserRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "secret123",
			IsAdmin:  true,
		}).Return(&models.UserResponse{ID: 3, Name: "Ana"}, nil)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/admin/users",
			strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"secret123","isAdmin":true}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandler_Delete_InUse(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("Delete", mock.Anything, int64(4)).Return(users.ErrUserInUse)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/admin/users/4", nil), map[string]string{"id": "4"})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Profile(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		h, _ := newTestHandler()

		rec := httptest.NewRecorder()
		h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/me/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("update own profile", func(t *testing.T) {
		h, svc := newTestHandler()
		phone := "09171234567"
		svc.On("UpdateProfile", mock.Anything, int64(9), &models.UpdateProfileRequest{Name: "Ana", Phone: &phone}).
			Return(&models.UserResponse{ID: 9, Name: "Ana"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/me/profile", strings.NewReader(`{"name":"Ana","phone":"09171234567"}`))
		req = req.WithContext(middleware.WithUserID(req.Context(), 9))
		rec := httptest.NewRecorder()
		h.UpdateProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}
