package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

// UpsertAvailability 重新提交同一周的空闲时间时直接覆盖原来的记录
func (r *Repository) UpsertAvailability(availability *domain.Availability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先把原先的记录删除再插入
	query := `DELETE FROM availabilities WHERE employee_id = $1 AND week_start_date = $2`
	if _, err := tx.ExecContext(ctx, query, availability.EmployeeID, availability.WeekStartDate); err != nil {
		return err
	}

	query = `
		INSERT INTO availabilities (employee_id, week_start_date, max_working_hours)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, availability.EmployeeID, availability.WeekStartDate, availability.MaxWorkingHours).Scan(&availability.ID, &availability.CreatedAt, &availability.Version); err != nil {
		return err
	}

	for _, slot := range availability.AvailableSlots {
		query := `
			INSERT INTO availability_slots (availability_id, slot_date)
			VALUES ($1, $2)
			RETURNING id
		`
		var slotID int64
		if err := tx.QueryRowContext(ctx, query, availability.ID, slot.Date).Scan(&slotID); err != nil {
			return err
		}

		for _, shiftType := range slot.Slots {
			query := `
				INSERT INTO availability_slot_shift_types (availability_slot_id, shift_type)
				VALUES ($1, $2)
			`
			if _, err := tx.ExecContext(ctx, query, slotID, shiftType); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailabilityByEmployeeAndWeek(employeeID int64, weekStartDate time.Time) (*domain.Availability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, max_working_hours, created_at, version
		FROM availabilities
		WHERE employee_id = $1 AND week_start_date = $2
	`

	availability := &domain.Availability{
		EmployeeID:    employeeID,
		WeekStartDate: weekStartDate,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, weekStartDate).Scan(&availability.ID, &availability.MaxWorkingHours, &availability.CreatedAt, &availability.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT
			avs.id,
			avs.slot_date,
			avsst.shift_type
		FROM availability_slots avs
		LEFT JOIN availability_slot_shift_types avsst ON avs.id = avsst.availability_slot_id
		WHERE avs.availability_id = $1
		ORDER BY avs.slot_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, availability.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slotsMap := make(map[int64]*domain.AvailabilitySlot)
	slotOrder := make([]int64, 0)

	for rows.Next() {
		var row struct {
			slotID    int64
			slotDate  time.Time
			shiftType sql.NullString
		}

		if err := rows.Scan(&row.slotID, &row.slotDate, &row.shiftType); err != nil {
			return nil, err
		}

		if _, exists := slotsMap[row.slotID]; !exists {
			slotsMap[row.slotID] = &domain.AvailabilitySlot{
				Date:  row.slotDate,
				Slots: make([]domain.ShiftType, 0),
			}
			slotOrder = append(slotOrder, row.slotID)
		}

		if row.shiftType.Valid {
			slotsMap[row.slotID].Slots = append(slotsMap[row.slotID].Slots, domain.ShiftType(row.shiftType.String))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	availability.AvailableSlots = make([]domain.AvailabilitySlot, 0, len(slotOrder))
	for _, slotID := range slotOrder {
		availability.AvailableSlots = append(availability.AvailableSlots, *slotsMap[slotID])
	}

	return availability, nil
}

// GetAvailabilitiesInRange 获取周起始日落在 [startDate, endDate] 内的所有空闲时间提交
func (r *Repository) GetAvailabilitiesInRange(startDate time.Time, endDate time.Time) ([]*domain.Availability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			av.id,
			av.employee_id,
			av.week_start_date,
			av.max_working_hours,
			avs.id,
			avs.slot_date,
			avsst.shift_type,
			av.created_at,
			av.version
		FROM availabilities av
		LEFT JOIN availability_slots avs ON av.id = avs.availability_id
		LEFT JOIN availability_slot_shift_types avsst ON avs.id = avsst.availability_slot_id
		WHERE av.week_start_date >= $1 AND av.week_start_date <= $2
		ORDER BY av.id, avs.slot_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilitiesMap := make(map[int64]*domain.Availability)
	availabilityOrder := make([]int64, 0)
	slotsMap := make(map[int64]map[int64]*domain.AvailabilitySlot) // availabilityID -> slotID -> slot
	slotOrder := make(map[int64][]int64)

	for rows.Next() {
		var row struct {
			availabilityID  int64
			employeeID      int64
			weekStartDate   time.Time
			maxWorkingHours sql.NullInt32
			slotID          sql.NullInt64
			slotDate        sql.NullTime
			shiftType       sql.NullString
			createdAt       time.Time
			version         int32
		}

		dst := []any{
			&row.availabilityID,
			&row.employeeID,
			&row.weekStartDate,
			&row.maxWorkingHours,
			&row.slotID,
			&row.slotDate,
			&row.shiftType,
			&row.createdAt,
			&row.version,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := availabilitiesMap[row.availabilityID]; !exists {
			availability := &domain.Availability{
				ID:            row.availabilityID,
				EmployeeID:    row.employeeID,
				WeekStartDate: row.weekStartDate,
				CreatedAt:     row.createdAt,
				Version:       row.version,
			}
			if row.maxWorkingHours.Valid {
				maxWorkingHours := row.maxWorkingHours.Int32
				availability.MaxWorkingHours = &maxWorkingHours
			}
			availabilitiesMap[row.availabilityID] = availability
			availabilityOrder = append(availabilityOrder, row.availabilityID)
			slotsMap[row.availabilityID] = make(map[int64]*domain.AvailabilitySlot)
		}

		if !row.slotID.Valid {
			// 这条提交记录没有任何空闲时间，业务上不太可能，但仍然需要处理
			continue
		}

		if _, exists := slotsMap[row.availabilityID][row.slotID.Int64]; !exists {
			slotsMap[row.availabilityID][row.slotID.Int64] = &domain.AvailabilitySlot{
				Date:  row.slotDate.Time,
				Slots: make([]domain.ShiftType, 0),
			}
			slotOrder[row.availabilityID] = append(slotOrder[row.availabilityID], row.slotID.Int64)
		}

		if !row.shiftType.Valid {
			// 这一天没有选择任何班次类型
			continue
		}

		slotsMap[row.availabilityID][row.slotID.Int64].Slots = append(slotsMap[row.availabilityID][row.slotID.Int64].Slots, domain.ShiftType(row.shiftType.String))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 组装结果
	availabilities := make([]*domain.Availability, 0, len(availabilityOrder))
	for _, availabilityID := range availabilityOrder {
		availability := availabilitiesMap[availabilityID]
		availability.AvailableSlots = make([]domain.AvailabilitySlot, 0, len(slotOrder[availabilityID]))
		for _, slotID := range slotOrder[availabilityID] {
			availability.AvailableSlots = append(availability.AvailableSlots, *slotsMap[availabilityID][slotID])
		}
		availabilities = append(availabilities, availability)
	}

	return availabilities, nil
}
