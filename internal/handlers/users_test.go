package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/Ilia642021/web-development-labs-2-sem/internal/httperr"
	"github.com/Ilia642021/web-development-labs-2-sem/internal/models"
)

func TestCreateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := &models.User{ID: 1, Name: "Ann", Email: "ann@x.com"}

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockUserServicer)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "success",
			body: `{"name":"Ann","email":"ann@x.com"}`,
			mockSetup: func(m *MockUserServicer) {
				m.EXPECT().
					Create(gomock.Any(), models.CreateUserRequest{Name: "Ann", Email: "ann@x.com"}).
					Return(created, nil)
			},
			expectedCode: 201,
		},
		{
			name: "missing fields",
			body: `{"email":"ann@x.com"}`,
			mockSetup: func(m *MockUserServicer) {
				m.EXPECT().
					Create(gomock.Any(), models.CreateUserRequest{Email: "ann@x.com"}).
					Return(nil, httperr.ClientInput("name and email are required", "name is required"))
			},
			expectedCode: 400,
			expectedErr:  "name and email are required",
		},
		{
			name: "duplicate email",
			body: `{"name":"Bob","email":"ann@x.com"}`,
			mockSetup: func(m *MockUserServicer) {
				m.EXPECT().
					Create(gomock.Any(), models.CreateUserRequest{Name: "Bob", Email: "ann@x.com"}).
					Return(nil, httperr.Conflict("User with this email already exists"))
			},
			expectedCode: 409,
			expectedErr:  "User with this email already exists",
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			expectedCode: 400,
			expectedErr:  "Invalid request body",
		},
		{
			name: "internal error",
			body: `{"name":"Ann","email":"ann@x.com"}`,
			mockSetup: func(m *MockUserServicer) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db down"))
			},
			expectedCode: 500,
			expectedErr:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserServicer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewCreateUserHandler(mockSvc)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == 201 {
				var user models.User
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
				assert.Equal(t, *created, user)
				return
			}

			var envelope map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
			assert.Equal(t, tt.expectedErr, envelope["error"])
		})
	}
}

// routeWithID dispatches through chi so URL parameters resolve.
func routeWithID(method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGetUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("found", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)
		mockSvc.EXPECT().Get(gomock.Any(), int64(7)).Return(&models.User{ID: 7, Name: "Ann"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		rr := routeWithID(http.MethodGet, "/users/{id}", NewGetUserHandler(mockSvc), req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)
		mockSvc.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, httperr.NotFound("User not found"))

		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		rr := routeWithID(http.MethodGet, "/users/{id}", NewGetUserHandler(mockSvc), req)

		assert.Equal(t, 404, rr.Code)
	})

	t.Run("non-integer id", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		rr := routeWithID(http.MethodGet, "/users/{id}", NewGetUserHandler(mockSvc), req)

		assert.Equal(t, 400, rr.Code)
	})
}

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockUserServicer(ctrl)
	mockSvc.EXPECT().List(gomock.Any()).Return([]models.User{{ID: 2}, {ID: 1}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()
	NewListUsersHandler(mockSvc)(rr, req)

	assert.Equal(t, 200, rr.Code)

	var users []models.User
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestUpdateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	name := "Annette"

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), int64(7), models.UpdateUserRequest{Name: &name}).
			Return(&models.User{ID: 7, Name: name}, nil)

		req := httptest.NewRequest(http.MethodPut, "/users/7", bytes.NewBufferString(`{"name":"Annette"}`))
		rr := routeWithID(http.MethodPut, "/users/{id}", NewUpdateUserHandler(mockSvc), req)

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), int64(7), gomock.Any()).
			Return(nil, httperr.NotFound("User not found"))

		req := httptest.NewRequest(http.MethodPut, "/users/7", bytes.NewBufferString(`{"name":"Annette"}`))
		rr := routeWithID(http.MethodPut, "/users/{id}", NewUpdateUserHandler(mockSvc), req)

		assert.Equal(t, 404, rr.Code)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)
		mockSvc.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/users/7", nil)
		rr := routeWithID(http.MethodDelete, "/users/{id}", NewDeleteUserHandler(mockSvc), req)

		assert.Equal(t, 204, rr.Code)
		assert.Empty(t, rr.Body.Bytes())
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := NewMockUserServicer(ctrl)
		mockSvc.EXPECT().Delete(gomock.Any(), int64(7)).Return(httperr.NotFound("User not found"))

		req := httptest.NewRequest(http.MethodDelete, "/users/7", nil)
		rr := routeWithID(http.MethodDelete, "/users/{id}", NewDeleteUserHandler(mockSvc), req)

		assert.Equal(t, 404, rr.Code)
	})
}
