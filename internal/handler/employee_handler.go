package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
	"staffpanel/internal/middleware"
	"staffpanel/internal/repository"
	"staffpanel/internal/session"
)

type EmployeeStore interface {
	List(ctx context.Context, params repository.ListParams) (repository.Page[entity.Employee], error)
	Get(ctx context.Context, id int) (entity.Employee, error)
	Create(ctx context.Context, employee entity.Employee) (entity.Employee, error)
	Update(ctx context.Context, id int, employee entity.Employee) (entity.Employee, error)
	Delete(ctx context.Context, id int) error
	CountAll(ctx context.Context) (int, error)
}

type EmployeeHandler struct {
	employees   EmployeeStore
	departments DepartmentStore
	sessions    *session.Manager
	rsp         *Responder
}

func NewEmployeeHandler(employees EmployeeStore, departments DepartmentStore, sessions *session.Manager, rsp *Responder) *EmployeeHandler {
	return &EmployeeHandler{
		employees:   employees,
		departments: departments,
		sessions:    sessions,
		rsp:         rsp,
	}
}

func (h *EmployeeHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	search := r.URL.Query().Get("search")

	result, err := h.employees.List(r.Context(), repository.ListParams{Page: page, Search: search})
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, result)
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "employees/index", map[string]any{
		"Title":      "Employees - Admin Panel",
		"Employees":  result.Items,
		"Pagination": result,
		"Search":     search,
		"Success":    flash.Success,
		"Error":      flash.Error,
		"ActiveMenu": "employees",
	})
}

func (h *EmployeeHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departments.ListAll(r.Context())
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "employees/create", map[string]any{
		"Title":       "Create Employee - Admin Panel",
		"Departments": departments,
		"Error":       flash.Error,
		"ActiveMenu":  "employees",
	})
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := employeeInput(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	employee, errs := form.validate()
	if len(errs) > 0 {
		h.rsp.Error(w, r, apperror.Validation(errs...))
		return
	}

	if err := h.ensureDepartment(r.Context(), employee.DepartmentID); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	created, err := h.employees.Create(r.Context(), employee)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusCreated, map[string]any{
			"message":  "Employee created successfully",
			"employee": created,
		})
		return
	}

	h.sessions.SetSuccess(w, r, "Employee created successfully.")
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *EmployeeHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, employee)
		return
	}

	h.rsp.Render(w, r, "employees/show", map[string]any{
		"Title":      employee.Name + " - Employee Detail",
		"Employee":   employee,
		"ActiveMenu": "employees",
	})
}

func (h *EmployeeHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	departments, err := h.departments.ListAll(r.Context())
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	flash := h.sessions.PopFlash(w, r)
	h.rsp.Render(w, r, "employees/edit", map[string]any{
		"Title":       "Edit " + employee.Name + " - Admin Panel",
		"Employee":    employee,
		"Departments": departments,
		"Error":       flash.Error,
		"ActiveMenu":  "employees",
	})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if _, err := h.employees.Get(r.Context(), id); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	form, err := employeeInput(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	employee, errs := form.validate()
	if len(errs) > 0 {
		h.rsp.Error(w, r, apperror.Validation(errs...))
		return
	}

	if err := h.ensureDepartment(r.Context(), employee.DepartmentID); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	updated, err := h.employees.Update(r.Context(), id, employee)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{
			"message":  "Employee updated successfully",
			"employee": updated,
		})
		return
	}

	h.sessions.SetSuccess(w, r, "Employee updated successfully.")
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if _, err := h.employees.Get(r.Context(), id); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		h.rsp.Error(w, r, err)
		return
	}

	if middleware.IsDataClient(r) {
		h.rsp.JSON(w, http.StatusOK, map[string]any{"message": "Employee deleted successfully"})
		return
	}

	h.sessions.SetSuccess(w, r, "Employee deleted successfully.")
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *EmployeeHandler) ensureDepartment(ctx context.Context, id int) error {
	if _, err := h.departments.Get(ctx, id); err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			return apperror.Validation("Department does not exist")
		}
		return err
	}
	return nil
}

type employeeForm struct {
	Name         string
	Email        string
	Phone        string
	Position     string
	HireDate     string
	Salary       string
	DepartmentID string
}

func employeeInput(r *http.Request) (employeeForm, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Name         string      `json:"name"`
			Email        string      `json:"email"`
			Phone        string      `json:"phone"`
			Position     string      `json:"position"`
			HireDate     string      `json:"hire_date"`
			Salary       json.Number `json:"salary"`
			DepartmentID json.Number `json:"department_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return employeeForm{}, apperror.New(apperror.CodeValidation, "Malformed request body")
		}
		return employeeForm{
			Name:         strings.TrimSpace(body.Name),
			Email:        strings.TrimSpace(body.Email),
			Phone:        strings.TrimSpace(body.Phone),
			Position:     strings.TrimSpace(body.Position),
			HireDate:     strings.TrimSpace(body.HireDate),
			Salary:       body.Salary.String(),
			DepartmentID: body.DepartmentID.String(),
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return employeeForm{}, apperror.New(apperror.CodeValidation, "Malformed request body")
	}
	return employeeForm{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		Position:     strings.TrimSpace(r.FormValue("position")),
		HireDate:     strings.TrimSpace(r.FormValue("hire_date")),
		Salary:       strings.TrimSpace(r.FormValue("salary")),
		DepartmentID: strings.TrimSpace(r.FormValue("department_id")),
	}, nil
}

// validate runs the plain field predicates and converts the well-formed
// fields into an entity. All messages are collected, not just the first.
func (f employeeForm) validate() (entity.Employee, []string) {
	var errs []string

	if f.Name == "" {
		errs = append(errs, "Name is required")
	}
	if f.Email == "" {
		errs = append(errs, "Email is required")
	}
	if f.Position == "" {
		errs = append(errs, "Position is required")
	}

	var hireDate time.Time
	if f.HireDate == "" {
		errs = append(errs, "Hire date is required")
	} else {
		var err error
		hireDate, err = time.Parse("2006-01-02", f.HireDate)
		if err != nil {
			errs = append(errs, "Hire date must be a valid date (YYYY-MM-DD)")
		}
	}

	if f.Salary == "" {
		errs = append(errs, "Salary is required")
	} else if v, err := strconv.ParseFloat(f.Salary, 64); err != nil || v < 0 {
		errs = append(errs, "Salary must be a non-negative number")
	}

	departmentID := 0
	if f.DepartmentID == "" {
		errs = append(errs, "Department is required")
	} else {
		var err error
		departmentID, err = strconv.Atoi(f.DepartmentID)
		if err != nil || departmentID < 1 {
			errs = append(errs, "Department is required")
		}
	}

	return entity.Employee{
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		Position:     f.Position,
		HireDate:     hireDate,
		Salary:       f.Salary,
		DepartmentID: departmentID,
	}, errs
}
