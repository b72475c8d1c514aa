package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/middleware"
	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookings"
	"github.com/m04kA/SMC-ShopAdmin/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ShopAdmin/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ShopAdmin/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) List(ctx context.Context, search string, page domain.Page) (*models.BookingListResponse, error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func (m *MockBookingService) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *MockBookingService) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingService) MyBookings(ctx context.Context, userID int64) ([]models.BookingResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingResponse), args.Error(1)
}

func (m *MockBookingService) CancelByUser(ctx context.Context, id, userID int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type MockCreateBookingUseCase struct {
	mock.Mock
}

func (m *MockCreateBookingUseCase) BookNow(ctx context.Context, req *createBooking.BookNowRequest) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

func (m *MockCreateBookingUseCase) CreateByAdmin(ctx context.Context, req *createBooking.AdminRequest) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

func newTestHandler() (*Handler, *MockBookingService, *MockCreateBookingUseCase) {
	svc := new(MockBookingService)
	uc := new(MockCreateBookingUseCase)
	return NewHandler(svc, uc, logger.NewWithWriter(io.Discard, logger.LevelDebug)), svc, uc
}

func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandler_BookNow(t *testing.T) {
	scheduled := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)
	body := `{"serviceId":3,"scheduledAt":"2025-07-01T09:30:00Z","notes":"blue sedan"}`

	tests := []struct {
		name       string
		body       string
		userID     int64
		setupMock  func(*MockCreateBookingUseCase)
		wantStatus int
	}{
		{
			name:   "booked",
			body:   body,
			userID: 12,
			setupMock: func(m *MockCreateBookingUseCase) {
				m.On("BookNow", mock.Anything, mock.MatchedBy(func(req *createBooking.BookNowRequest) bool {
					return req.UserID == 12 && req.ServiceID == 3 && req.ScheduledAt.Equal(scheduled) &&
						req.Notes != nil && *req.Notes == "blue sedan"
				})).Return(&createBooking.Response{ID: 40, BookingNumber: 48213377, TotalAmount: 1500}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing user",
			body:       body,
			setupMock:  func(m *MockCreateBookingUseCase) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing service",
			body:       `{"scheduledAt":"2025-07-01T09:30:00Z"}`,
			userID:     12,
			setupMock:  func(m *MockCreateBookingUseCase) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "past date",
			body:   body,
			userID: 12,
			setupMock: func(m *MockCreateBookingUseCase) {
				m.On("BookNow", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: BookNow", createBooking.ErrInvalidDate))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "inactive service",
			body:   body,
			userID: 12,
			setupMock: func(m *MockCreateBookingUseCase) {
				m.On("BookNow", mock.Anything, mock.Anything).Return(nil, createBooking.ErrServiceInactive)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "allocator failure",
			body:   body,
			userID: 12,
			setupMock: func(m *MockCreateBookingUseCase) {
				m.On("BookNow", mock.Anything, mock.Anything).Return(nil, createBooking.ErrInternal)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, uc := newTestHandler()
			tt.setupMock(uc)

			req := httptest.NewRequest(http.MethodPost, "/bookings/book-now", strings.NewReader(tt.body))
			if tt.userID != 0 {
				req = withUser(req, tt.userID)
			}
			rec := httptest.NewRecorder()
			h.BookNow(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestHandler_BookNow_ResponseBody(t *testing.T) {
	h, _, uc := newTestHandler()
	uc.On("BookNow", mock.Anything, mock.Anything).
		Return(&createBooking.Response{ID: 40, BookingNumber: 48213377, TotalAmount: 1500, Status: "pending"}, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/bookings/book-now",
		strings.NewReader(`{"serviceId":3,"scheduledAt":"2025-07-01T09:30:00Z"}`)), 12)
	rec := httptest.NewRecorder()
	h.BookNow(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Result  bool                   `json:"result"`
		Message string                 `json:"message"`
		Data    CreatedBookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Result)
	assert.Equal(t, msgBooked, body.Message)
	assert.Equal(t, int64(48213377), body.Data.BookingNumber)
	assert.Equal(t, "₱1,500.00", body.Data.FormattedTotal)
}

func TestHandler_Create_Admin(t *testing.T) {
	t.Run("explicit number taken", func(t *testing.T) {
		h, _, uc := newTestHandler()
		uc.On("CreateByAdmin", mock.Anything, mock.MatchedBy(func(req *createBooking.AdminRequest) bool {
			return req.BookingNumber != nil && *req.BookingNumber == 12345678
		})).Return(nil, createBooking.ErrBookingNumberTaken)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/admin/bookings", strings.NewReader(
			`{"bookingNumber":12345678,"userId":2,"serviceId":3,"scheduledAt":"2025-07-01T09:30:00Z"}`)))

		assert.Equal(t, http.StatusConflict, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("number out of range", func(t *testing.T) {
		h, _, uc := newTestHandler()

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/admin/bookings", strings.NewReader(
			`{"bookingNumber":1234,"userId":2,"serviceId":3,"scheduledAt":"2025-07-01T09:30:00Z"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "bookingNumber")
		uc.AssertNotCalled(t, "CreateByAdmin", mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/admin/bookings", strings.NewReader(
			`{"userId":2,"serviceId":3,"scheduledAt":"2025-07-01T09:30:00Z","status":"archived"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "updated", err: nil, wantStatus: http.StatusOK},
		{name: "invalid transition", err: bookings.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "number taken", err: bookings.ErrBookingNumberTaken, wantStatus: http.StatusConflict},
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, _ := newTestHandler()
			call := svc.On("Update", mock.Anything, int64(8), mock.MatchedBy(func(req *models.UpdateBookingRequest) bool {
				return req.Status == "completed" && req.TotalAmount == 1500
			}))
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&models.BookingResponse{ID: 8, Status: "completed"}, nil)
			}

			req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/admin/bookings/8", strings.NewReader(
				`{"userId":2,"serviceId":3,"scheduledAt":"2025-07-01T09:30:00Z","status":"completed","totalAmount":1500}`)),
				map[string]string{"id": "8"})
			rec := httptest.NewRecorder()
			h.Update(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Cancel(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "cancelled", err: nil, wantStatus: http.StatusOK},
		{name: "foreign booking", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not pending", err: bookings.ErrCannotCancel, wantStatus: http.StatusUnprocessableEntity},
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, _ := newTestHandler()
			if tt.err != nil {
				svc.On("CancelByUser", mock.Anything, int64(5), int64(12)).Return(nil, tt.err)
			} else {
				svc.On("CancelByUser", mock.Anything, int64(5), int64(12)).
					Return(&models.BookingResponse{ID: 5, Status: "cancelled"}, nil)
			}

			req := mux.SetURLVars(httptest.NewRequest(http.MethodPatch, "/me/bookings/5/cancel", nil), map[string]string{"id": "5"})
			rec := httptest.NewRecorder()
			h.Cancel(rec, withUser(req, 12))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_MyBookings(t *testing.T) {
	h, svc, _ := newTestHandler()
	svc.On("MyBookings", mock.Anything, int64(12)).Return([]models.BookingResponse{{ID: 1}, {ID: 2}}, nil)

	rec := httptest.NewRecorder()
	h.MyBookings(rec, withUser(httptest.NewRequest(http.MethodGet, "/me/bookings", nil), 12))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["data"], 2)
}
