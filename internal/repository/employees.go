package repository

import (
	"context"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employees (name, email, seniority_level, max_hours_per_week)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	args := []any{employee.Name, employee.Email, employee.SeniorityLevel, employee.MaxHoursPerWeek}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.IsActive, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT name, email, seniority_level, max_hours_per_week, is_active, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	dst := []any{&employee.Name, &employee.Email, &employee.SeniorityLevel, &employee.MaxHoursPerWeek, &employee.IsActive, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByEmail(email string) (*domain.Employee, error) {
	query := `
		SELECT id, name, seniority_level, max_hours_per_week, is_active, created_at, version
		FROM employees WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		Email: email,
	}

	dst := []any{&employee.ID, &employee.Name, &employee.SeniorityLevel, &employee.MaxHoursPerWeek, &employee.IsActive, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, name, email, seniority_level, max_hours_per_week, is_active, created_at, version
		FROM employees
		WHERE is_active = TRUE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.Name, &employee.Email, &employee.SeniorityLevel, &employee.MaxHoursPerWeek, &employee.IsActive, &employee.CreatedAt, &employee.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			name = $1,
			email = $2,
			seniority_level = $3,
			max_hours_per_week = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.Name, employee.Email, employee.SeniorityLevel, employee.MaxHoursPerWeek, employee.IsActive, employee.ID, employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
