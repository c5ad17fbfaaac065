package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasmendez/rolegate/models"
	"github.com/lucasmendez/rolegate/repositories"
	"github.com/lucasmendez/rolegate/utils"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	t.Run("creates account with viewer role", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "ana@example.com" && u.Role == models.RoleViewer
		})).Return(nil)

		deps := newTestDeps(mockRepo)
		rec := postJSON(t, RegisterHandler(deps), "/api/auth/register", RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "correct horse battery",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp utils.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ana@example.com", data["email"])
		assert.NotContains(t, rec.Body.String(), "password")

		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid payload without touching storage", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		deps := newTestDeps(mockRepo)

		rec := postJSON(t, RegisterHandler(deps), "/api/auth/register", RegisterRequest{
			Name:     "Ana",
			Email:    "not-an-email",
			Password: "correct horse battery",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(repositories.ErrDuplicateEmail)

		deps := newTestDeps(mockRepo)
		rec := postJSON(t, RegisterHandler(deps), "/api/auth/register", RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "correct horse battery",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp utils.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "fail", resp.Status)
	})
}

func TestLoginHandler(t *testing.T) {
	password := "correct horse battery"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	account := models.NewUser("Ana", "ana@example.com", string(hash), models.RoleEditor)

	t.Run("sets token cookie and returns the token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(account, nil)

		deps := newTestDeps(mockRepo)
		rec := postJSON(t, LoginHandler(deps), "/api/auth/login", LoginRequest{
			Email:    "ana@example.com",
			Password: password,
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "token" {
				cookie = c
			}
		}
		require.NotNil(t, cookie, "login must set the token cookie")
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		var resp utils.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, cookie.Value, data["token"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(account, nil)

		deps := newTestDeps(mockRepo)
		rec := postJSON(t, LoginHandler(deps), "/api/auth/login", LoginRequest{
			Email:    "ana@example.com",
			Password: "wrong password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown email gets the same unauthorized answer", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repositories.ErrUserNotFound)

		deps := newTestDeps(mockRepo)
		rec := postJSON(t, LoginHandler(deps), "/api/auth/login", LoginRequest{
			Email:    "ghost@example.com",
			Password: password,
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("storage failure is an internal error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "ana@example.com").
			Return(nil, errors.New("connection refused"))

		deps := newTestDeps(mockRepo)
		rec := postJSON(t, LoginHandler(deps), "/api/auth/login", LoginRequest{
			Email:    "ana@example.com",
			Password: password,
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestLogoutHandler(t *testing.T) {
	deps := newTestDeps(new(MockUserRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	LogoutHandler(deps)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
