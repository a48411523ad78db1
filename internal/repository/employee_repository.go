package repository

import (
	"context"
	"database/sql"
	"fmt"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
)

type EmployeeRepository struct {
	db    *sql.DB
	pager pager[entity.Employee]
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
		pager: pager[entity.Employee]{
			db:    db,
			name:  "employee",
			label: "Employee",
			table: "employees",
			selectList: `e.id, e.name, e.email, COALESCE(e.phone, ''), e.position, e.hire_date,
				e.salary::text, e.department_id, e.created_at, e.updated_at,
				d.id, d.name, COALESCE(d.description, ''), d.created_at, d.updated_at`,
			from:     "employees e JOIN departments d ON d.id = e.department_id",
			idColumn: "e.id",
			// The department name is searchable through the join.
			searchCols: []string{"e.name", "e.email", "e.position", "d.name"},
			orderBy:    "e.created_at DESC",
			scan:       scanEmployeeWithDepartment,
		},
	}
}

func (r *EmployeeRepository) List(ctx context.Context, params ListParams) (Page[entity.Employee], error) {
	return r.pager.List(ctx, params)
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (entity.Employee, error) {
	return r.pager.Get(ctx, id)
}

func (r *EmployeeRepository) Create(ctx context.Context, employee entity.Employee) (entity.Employee, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (name, email, phone, position, hire_date, salary, department_id)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6::numeric, $7)
		RETURNING id`,
		employee.Name, employee.Email, employee.Phone, employee.Position,
		employee.HireDate, employee.Salary, employee.DepartmentID).Scan(&id)
	if err != nil {
		return entity.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *EmployeeRepository) Update(ctx context.Context, id int, employee entity.Employee) (entity.Employee, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET name = $1, email = $2, phone = NULLIF($3, ''), position = $4,
			hire_date = $5, salary = $6::numeric, department_id = $7, updated_at = now()
		WHERE id = $8`,
		employee.Name, employee.Email, employee.Phone, employee.Position,
		employee.HireDate, employee.Salary, employee.DepartmentID, id)
	if err != nil {
		return entity.Employee{}, fmt.Errorf("update employee: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return entity.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	if affected == 0 {
		return entity.Employee{}, apperror.New(apperror.CodeNotFound, "Employee not found")
	}

	return r.Get(ctx, id)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	return r.pager.Delete(ctx, id)
}

func (r *EmployeeRepository) CountAll(ctx context.Context) (int, error) {
	return r.pager.CountAll(ctx)
}

func scanEmployee(row rowScanner) (entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.HireDate,
		&e.Salary, &e.DepartmentID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func scanEmployeeWithDepartment(row rowScanner) (entity.Employee, error) {
	var (
		e entity.Employee
		d entity.Department
	)
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.HireDate,
		&e.Salary, &e.DepartmentID, &e.CreatedAt, &e.UpdatedAt,
		&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return entity.Employee{}, err
	}
	e.Department = &d
	return e, nil
}
