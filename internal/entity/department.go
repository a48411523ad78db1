package entity

import "time"

type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// EmployeeCount is filled by list queries, Employees by Get.
	EmployeeCount int        `json:"employee_count"`
	Employees     []Employee `json:"employees,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
