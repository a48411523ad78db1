package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
	"staffpanel/internal/repository"
)

func TestErrorHidesInternalDetailFromDataClients(t *testing.T) {
	rsp, _ := testEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/departments?page=2", nil)
	req.Header.Set("Accept", "application/json")
	res := httptest.NewRecorder()
	rsp.Error(res, req, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, res.Code)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, http.StatusInternalServerError, payload.StatusCode)
	assert.Equal(t, "Internal server error", payload.Message)
	assert.Equal(t, "/departments?page=2", payload.Path)
	assert.NotContains(t, res.Body.String(), "connection refused")

	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	assert.NoError(t, err)
}

func TestErrorHidesInternalDetailFromBrowsers(t *testing.T) {
	rsp, _ := testEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/departments", nil)
	req.Header.Set("Accept", "text/html")
	res := httptest.NewRecorder()
	rsp.Error(res, req, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Contains(t, res.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, res.Body.String(), "Server Error")
	assert.NotContains(t, res.Body.String(), "connection refused")
}

func TestErrorUnauthorizedRedirectsBrowsers(t *testing.T) {
	rsp, _ := testEnv(t)

	res := httptest.NewRecorder()
	rsp.Error(res, httptest.NewRequest(http.MethodGet, "/departments", nil),
		apperror.New(apperror.CodeUnauthorized, "Authentication required"))

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login", res.Header().Get("Location"))
}

func TestErrorUnauthorizedJSON(t *testing.T) {
	rsp, _ := testEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/departments", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	res := httptest.NewRecorder()
	rsp.Error(res, req, apperror.New(apperror.CodeUnauthorized, "Authentication required"))

	require.Equal(t, http.StatusUnauthorized, res.Code)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "Authentication required", payload.Message)
}

func TestErrorValidationDefaultsToRootWithoutReferer(t *testing.T) {
	rsp, sessions := testEnv(t)

	res := httptest.NewRecorder()
	rsp.Error(res, httptest.NewRequest(http.MethodPost, "/departments", nil),
		apperror.Validation("Department name is required"))

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/", res.Header().Get("Location"))

	flash := sessions.PopFlash(httptest.NewRecorder(),
		withCookies(httptest.NewRequest(http.MethodGet, "/", nil), res))
	assert.Equal(t, "Department name is required", flash.Error)
}

func TestRenderFillsCurrentUser(t *testing.T) {
	rsp, sessions := testEnv(t)

	login := httptest.NewRecorder()
	require.NoError(t, sessions.SignIn(login,
		httptest.NewRequest(http.MethodPost, "/auth/login", nil),
		entity.SessionUser{ID: 1, Username: "admin", Name: "Administrator"}))

	res := httptest.NewRecorder()
	rsp.Render(res, withCookies(httptest.NewRequest(http.MethodGet, "/departments", nil), login),
		"departments/index", map[string]any{
			"Title":       "Departments - Admin Panel",
			"Departments": []entity.Department{},
			"Pagination":  repository.Page[entity.Department]{Page: 1, Limit: 10},
			"Search":      "",
		})

	// The navigation is only rendered for a signed-in user.
	assert.Contains(t, res.Body.String(), "Administrator")
	assert.Contains(t, res.Body.String(), "/auth/logout")
}
