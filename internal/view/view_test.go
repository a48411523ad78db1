package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffpanel/internal/entity"
)

func TestNewParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, page := range pages {
		assert.Contains(t, r.templates, page)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "departments/missing", nil)
	assert.Error(t, err)
}

func TestRenderLoginPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "auth/login", map[string]any{
		"Title":       "Login - Admin Panel",
		"Error":       "Invalid username or password.",
		"IsLoginPage": true,
	}))

	assert.Contains(t, buf.String(), "Login - Admin Panel")
	assert.Contains(t, buf.String(), "Invalid username or password.")
}

func TestRenderErrorPageWithoutUser(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "errors/404", map[string]any{
		"Title":      "Page Not Found",
		"StatusCode": 404,
		"Message":    "Department not found",
		"Path":       "/departments/99",
		"ActiveMenu": "",
	}))

	out := buf.String()
	assert.Contains(t, out, "Page Not Found")
	assert.NotContains(t, out, "Logout")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", funcs["formatDate"].(func(time.Time) string)(time.Time{}))

	day := time.Date(2023, 4, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-04-15", funcs["formatDate"].(func(time.Time) string)(day))
}

func TestRenderShowPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "departments/show", map[string]any{
		"Title": "Engineering - Department Detail",
		"User":  entity.SessionUser{ID: 1, Username: "admin", Name: "Administrator"},
		"Department": entity.Department{
			ID:            1,
			Name:          "Engineering",
			Description:   "Product development",
			EmployeeCount: 1,
			Employees:     []entity.Employee{{ID: 2, Name: "Alice Johnson", Position: "Engineer"}},
		},
		"ActiveMenu": "departments",
	}))

	out := buf.String()
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "Alice Johnson")
}
