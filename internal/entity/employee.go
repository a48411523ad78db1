package entity

import "time"

type Employee struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Position string    `json:"position"`
	HireDate time.Time `json:"hire_date"`
	// Salary is a decimal carried as text to avoid float drift.
	Salary       string      `json:"salary"`
	DepartmentID int         `json:"department_id"`
	Department   *Department `json:"department,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
