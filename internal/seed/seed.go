package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"staffpanel/internal/config"
	"staffpanel/internal/entity"
	"staffpanel/internal/repository"
)

// Run creates the admin identity if absent and optionally fills empty tables
// with demo data.
func Run(ctx context.Context, cfg config.Config, users *repository.UserRepository,
	departments *repository.DepartmentRepository, employees *repository.EmployeeRepository,
	logger *zap.Logger) error {

	if err := ensureAdmin(ctx, cfg, users, logger); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := demoData(ctx, departments, employees, logger); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(ctx context.Context, cfg config.Config, users *repository.UserRepository, logger *zap.Logger) error {
	_, err := users.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := users.Create(ctx, cfg.AdminUsername, string(hash), cfg.AdminName); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.Info("admin user created", zap.String("username", cfg.AdminUsername))
	return nil
}

var demoDepartments = []entity.Department{
	{Name: "Human Resources", Description: "Managing employee relations and recruitment."},
	{Name: "Engineering", Description: "Product development and technical operations."},
	{Name: "Marketing", Description: "Brand management and customer outreach."},
	{Name: "Sales", Description: "Revenue generation and client partnerships."},
	{Name: "Finance", Description: "Financial planning and accounting."},
}

var demoNames = []string{
	"Alice Johnson", "Bob Smith", "Charlie Brown", "Diana Prince", "Edward Norton",
	"Fiona Gallagher", "George Clooney", "Hannah Abbott", "Ian Wright", "Jane Doe",
	"Kevin Hart", "Laura Palmer", "Michael Jordan", "Nina Simone", "Oscar Isaac",
	"Peter Parker", "Quinn Fabray", "Rachel Green", "Steven Strange", "Tony Stark",
}

var demoPositions = []string{"Manager", "Senior Developer", "Junior Developer", "Specialist", "Analyst", "Lead"}

func demoData(ctx context.Context, departments *repository.DepartmentRepository,
	employees *repository.EmployeeRepository, logger *zap.Logger) error {

	count, err := departments.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	created := make([]entity.Department, 0, len(demoDepartments))
	for _, d := range demoDepartments {
		department, err := departments.Create(ctx, d)
		if err != nil {
			return fmt.Errorf("seed department %s: %w", d.Name, err)
		}
		created = append(created, department)
	}

	for i, name := range demoNames {
		department := created[i%len(created)]
		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
		hireDate, err := time.Parse("2006-01-02", fmt.Sprintf("2023-%02d-%02d", i%12+1, i%28+1))
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", name, err)
		}

		employee := entity.Employee{
			Name:         name,
			Email:        email,
			Phone:        fmt.Sprintf("0812%08d", 10000000+i),
			Position:     demoPositions[i%len(demoPositions)],
			HireDate:     hireDate,
			Salary:       fmt.Sprintf("%d", 5000000+i*750000),
			DepartmentID: department.ID,
		}
		if _, err := employees.Create(ctx, employee); err != nil {
			return fmt.Errorf("seed employee %s: %w", name, err)
		}
	}

	logger.Info("demo data seeded",
		zap.Int("departments", len(created)),
		zap.Int("employees", len(demoNames)),
	)
	return nil
}
