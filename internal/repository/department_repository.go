package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staffpanel/internal/apperror"
	"staffpanel/internal/entity"
)

type DepartmentRepository struct {
	db    *sql.DB
	pager pager[entity.Department]
}

func NewDepartmentRepository(db *sql.DB) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		pager: pager[entity.Department]{
			db:    db,
			name:  "department",
			label: "Department",
			table: "departments",
			selectList: `d.id, d.name, COALESCE(d.description, ''), d.created_at, d.updated_at,
				(SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id)`,
			from:       "departments d",
			idColumn:   "d.id",
			searchCols: []string{"d.name", "d.description"},
			orderBy:    "d.created_at DESC",
			scan:       scanDepartment,
		},
	}
}

func (r *DepartmentRepository) List(ctx context.Context, params ListParams) (Page[entity.Department], error) {
	return r.pager.List(ctx, params)
}

// Get returns the department with its employees attached in a second fetch.
func (r *DepartmentRepository) Get(ctx context.Context, id int) (entity.Department, error) {
	department, err := r.pager.Get(ctx, id)
	if err != nil {
		return entity.Department{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), position, hire_date, salary::text,
			department_id, created_at, updated_at
		FROM employees
		WHERE department_id = $1
		ORDER BY name ASC`, id)
	if err != nil {
		return entity.Department{}, fmt.Errorf("load department employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return entity.Department{}, fmt.Errorf("scan department employee: %w", err)
		}
		department.Employees = append(department.Employees, employee)
	}
	if err := rows.Err(); err != nil {
		return entity.Department{}, fmt.Errorf("load department employees: %w", err)
	}

	department.EmployeeCount = len(department.Employees)
	return department, nil
}

// ListAll returns every department ordered by name, for form dropdowns.
func (r *DepartmentRepository) ListAll(ctx context.Context) ([]entity.Department, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at
		FROM departments
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var departments []entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) Create(ctx context.Context, department entity.Department) (entity.Department, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO departments (name, description)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, name, COALESCE(description, ''), created_at, updated_at`,
		department.Name, department.Description)

	var d entity.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return entity.Department{}, fmt.Errorf("create department: %w", err)
	}
	return d, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, id int, department entity.Department) (entity.Department, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE departments
		SET name = $1, description = NULLIF($2, ''), updated_at = now()
		WHERE id = $3
		RETURNING id, name, COALESCE(description, ''), created_at, updated_at`,
		department.Name, department.Description, id)

	var d entity.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Department{}, apperror.New(apperror.CodeNotFound, "Department not found")
		}
		return entity.Department{}, fmt.Errorf("update department: %w", err)
	}
	return d, nil
}

// Delete removes the department; its employees go with it through the
// storage-level cascade.
func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	return r.pager.Delete(ctx, id)
}

func (r *DepartmentRepository) CountAll(ctx context.Context) (int, error) {
	return r.pager.CountAll(ctx)
}

func scanDepartment(row rowScanner) (entity.Department, error) {
	var d entity.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount)
	return d, err
}
