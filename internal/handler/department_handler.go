package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
	"staffpanel/internal/middleware"
	"staffpanel/internal/repository"
	"staffpanel/internal/session"
)

type DepartmentStore interface {
	List(ctx context.Context, params repository.ListParams) (repository.Page[entity.Department], error)
	ListAll(ctx context.Context) ([]entity.Department, error)
	Get(ctx context.Context, id int) (entity.Department, error)
	Create(ctx context.Context, department entity.Department) (entity.Department, error)
	Update(ctx context.Context, id int, department entity.Department) (entity.Department, error)
	Delete(ctx context.Context, id int) error
	CountAll(ctx context.Context) (int, error)
}

type DepartmentHandler struct {
	departments DepartmentStore
	sessions    *session.Manager
	rsp         *Responder
}

func NewDepartmentHandler(departments DepartmentStore, sessions *session.Manager, rsp *Responder) *DepartmentHandler {
	return &DepartmentHandler{
		departments: departments,
		sessions:    sessions,
		rsp:         rsp,
	}
}

func (h *DepartmentHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	search := r.URL.Query().Get("search")

	result, err := h.departments.List(r.Context(), repository.ListParams{Page: page, Search: search})
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, result)
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "departments/index", map[string]any{
		"Title":       "Departments - Admin Panel",
		"Departments": result.Items,
		"Pagination":  result,
		"Search":      search,
		"Success":     flash.Success,
		"Error":       flash.Error,
		"ActiveMenu":  "departments",
	})
}

func (h *DepartmentHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "departments/create", map[string]any{
		"Title":      "Create Department - Admin Panel",
		"Error":      flash.Error,
		"ActiveMenu": "departments",
	})
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := departmentInput(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if errs := validateDepartment(input); len(errs) > 0 {
		h.rsp.Error(w, r, apperror.Validation(errs...))
		return
	}

	department, err := h.departments.Create(r.Context(), input)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusCreated, map[string]any{
			"message":    "Department created successfully",
			"department": department,
		})
		return
	}

	h.sessions.SetSuccess(w, r, "Department created successfully.")
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func (h *DepartmentHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	department, err := h.departments.Get(r.Context(), id)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, department)
		return
	}

	h.rsp.Render(w, r, "departments/show", map[string]any{
		"Title":      department.Name + " - Department Detail",
		"Department": department,
		"ActiveMenu": "departments",
	})
}

func (h *DepartmentHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	department, err := h.departments.Get(r.Context(), id)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "departments/edit", map[string]any{
		"Title":      "Edit " + department.Name + " - Admin Panel",
		"Department": department,
		"Error":      flash.Error,
		"ActiveMenu": "departments",
	})
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	// Fetch first: absence is a distinct not-found outcome.
	if _, err := h.departments.Get(r.Context(), id); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	input, err := departmentInput(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if errs := validateDepartment(input); len(errs) > 0 {
		h.rsp.Error(w, r, apperror.Validation(errs...))
		return
	}

	department, err := h.departments.Update(r.Context(), id, input)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{
			"message":    "Department updated successfully",
			"department": department,
		})
		return
	}

	h.sessions.SetSuccess(w, r, "Department updated successfully.")
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if _, err := h.departments.Get(r.Context(), id); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if err := h.departments.Delete(r.Context(), id); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{"message": "Department deleted successfully"})
		return
	}

	h.sessions.SetSuccess(w, r, "Department deleted successfully.")
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func departmentInput(r *http.Request) (entity.Department, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return entity.Department{}, apperror.New(apperror.CodeValidation, "Malformed request body")
		}
		return entity.Department{
			Name:        strings.TrimSpace(body.Name),
			Description: strings.TrimSpace(body.Description),
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return entity.Department{}, apperror.New(apperror.CodeValidation, "Malformed request body")
	}
	return entity.Department{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}, nil
}

func validateDepartment(d entity.Department) []string {
	var errs []string
	if d.Name == "" {
		errs = append(errs, "Department name is required")
	}
	if len(d.Name) > 100 {
		errs = append(errs, "Department name must be at most 100 characters")
	}
	return errs
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		return 0, apperror.New(apperror.CodeValidation, "Invalid id")
	}
	return id, nil
}
