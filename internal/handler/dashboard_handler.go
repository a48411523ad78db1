package handler

import (
	"net/http"

	"staffpanel/internal/middleware"
	"staffpanel/internal/session"
)

type DashboardHandler struct {
	departments DepartmentStore
	employees   EmployeeStore
	sessions    *session.Manager
	rsp         *Responder
}

func NewDashboardHandler(departments DepartmentStore, employees EmployeeStore, sessions *session.Manager, rsp *Responder) *DashboardHandler {
	return &DashboardHandler{
		departments: departments,
		employees:   employees,
		sessions:    sessions,
		rsp:         rsp,
	}
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	departmentCount, err := h.departments.CountAll(r.Context())
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	employeeCount, err := h.employees.CountAll(r.Context())
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{
			"departments": departmentCount,
			"employees":   employeeCount,
		})
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "dashboard", map[string]any{
		"Title":           "Dashboard - Admin Panel",
		"DepartmentCount": departmentCount,
		"EmployeeCount":   employeeCount,
		"Success":         flash.Success,
		"Error":           flash.Error,
		"ActiveMenu":      "dashboard",
	})
}

// Root sends authenticated visitors to the landing page and everyone else to
// the login form.
func Root(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessions.CurrentUser(r); ok {
			http.Redirect(w, r, "/departments", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
	}
}
