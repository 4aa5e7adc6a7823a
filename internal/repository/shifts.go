package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

func (r *Repository) scanShiftRows(rows *sql.Rows) ([]*domain.Shift, error) {
	shiftsMap := make(map[int64]*domain.Shift)
	shiftOrder := make([]int64, 0)

	for rows.Next() {
		var row struct {
			shiftID       int64
			date          time.Time
			shiftType     string
			status        string
			minEmployees  int32
			maxEmployees  int32
			employeeID    sql.NullInt64
			employeeName  sql.NullString
			employeeEmail sql.NullString
			createdAt     time.Time
			version       int32
		}

		dst := []any{
			&row.shiftID,
			&row.date,
			&row.shiftType,
			&row.status,
			&row.minEmployees,
			&row.maxEmployees,
			&row.employeeID,
			&row.employeeName,
			&row.employeeEmail,
			&row.createdAt,
			&row.version,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := shiftsMap[row.shiftID]; !exists {
			shiftsMap[row.shiftID] = &domain.Shift{
				ID:           row.shiftID,
				Date:         row.date,
				Type:         domain.ShiftType(row.shiftType),
				EmployeeIDs:  make([]int64, 0),
				Employees:    make([]domain.ShiftEmployee, 0),
				Status:       domain.ShiftStatus(row.status),
				MinEmployees: row.minEmployees,
				MaxEmployees: row.maxEmployees,
				CreatedAt:    row.createdAt,
				Version:      row.version,
			}
			shiftOrder = append(shiftOrder, row.shiftID)
		}

		if !row.employeeID.Valid {
			// 班次没有任何员工，业务上不会出现，但查询用的是 LEFT JOIN，仍然需要处理
			continue
		}

		shift := shiftsMap[row.shiftID]
		shift.EmployeeIDs = append(shift.EmployeeIDs, row.employeeID.Int64)
		shift.Employees = append(shift.Employees, domain.ShiftEmployee{
			ID:    row.employeeID.Int64,
			Name:  row.employeeName.String,
			Email: row.employeeEmail.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	shifts := make([]*domain.Shift, 0, len(shiftOrder))
	for _, shiftID := range shiftOrder {
		shifts = append(shifts, shiftsMap[shiftID])
	}

	return shifts, nil
}

// GetShiftsInRange 获取日期范围内的所有班次，员工信息解析成展示用的 {id, name, email}
func (r *Repository) GetShiftsInRange(startDate time.Time, endDate time.Time) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			s.id,
			s.date,
			s.type,
			s.status,
			s.min_employees,
			s.max_employees,
			e.id,
			e.name,
			e.email,
			s.created_at,
			s.version
		FROM shifts s
		LEFT JOIN shift_employees se ON s.id = se.shift_id
		LEFT JOIN employees e ON se.employee_id = e.id
		WHERE s.date >= $1 AND s.date <= $2
		ORDER BY s.date, s.type, e.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanShiftRows(rows)
}

// GetShiftsForEmployee 获取某个员工在日期范围内被排到的所有班次
func (r *Repository) GetShiftsForEmployee(employeeID int64, startDate time.Time, endDate time.Time) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			s.id,
			s.date,
			s.type,
			s.status,
			s.min_employees,
			s.max_employees,
			e.id,
			e.name,
			e.email,
			s.created_at,
			s.version
		FROM shifts s
		LEFT JOIN shift_employees se ON s.id = se.shift_id
		LEFT JOIN employees e ON se.employee_id = e.id
		WHERE s.date >= $1 AND s.date <= $2
			AND s.id IN (SELECT shift_id FROM shift_employees WHERE employee_id = $3)
		ORDER BY s.date, s.type, e.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, startDate, endDate, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanShiftRows(rows)
}

// InsertScheduleRun 在一个事务中插入一次排班运行产生的班次和通知
// 要么全部提交要么全部回滚，不允许部分提交
// shifts_date_type_key 唯一约束是并发运行时的最后一道防线
func (r *Repository) InsertScheduleRun(shifts []*domain.Shift, notifications []*domain.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, shift := range shifts {
		query := `
			INSERT INTO shifts (date, type, status, min_employees, max_employees)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, version
		`

		if err := tx.QueryRowContext(ctx, query, shift.Date, shift.Type, shift.Status, shift.MinEmployees, shift.MaxEmployees).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
			return err
		}

		for _, employeeID := range shift.EmployeeIDs {
			query := `
				INSERT INTO shift_employees (shift_id, employee_id)
				VALUES ($1, $2)
			`
			if _, err := tx.ExecContext(ctx, query, shift.ID, employeeID); err != nil {
				return err
			}
		}
	}

	for _, notification := range notifications {
		query := `
			INSERT INTO notifications (message, date, status)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, notification.Message, notification.Date, notification.Status).Scan(&notification.ID, &notification.CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
