package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

// GetShiftSettings 获取全局排班设置，数据库中还没有记录时返回默认值
func (r *Repository) GetShiftSettings() (*domain.ShiftSettings, error) {
	query := `
		SELECT id, max_employees, version
		FROM shift_settings
		ORDER BY id
		LIMIT 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.ShiftSettings{}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&settings.ID, &settings.MaxEmployees, &settings.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ShiftSettings{MaxEmployees: domain.DefaultMaxEmployeesPerShift}, nil
		}
		return nil, err
	}

	return settings, nil
}

// UpsertShiftSettings 更新全局排班设置，还没有记录时自动创建
func (r *Repository) UpsertShiftSettings(settings *domain.ShiftSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existingID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM shift_settings ORDER BY id LIMIT 1`).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		query := `
			INSERT INTO shift_settings (max_employees)
			VALUES ($1)
			RETURNING id, version
		`
		if err := tx.QueryRowContext(ctx, query, settings.MaxEmployees).Scan(&settings.ID, &settings.Version); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		query := `
			UPDATE shift_settings
			SET max_employees = $1, version = version + 1
			WHERE id = $2
			RETURNING version
		`
		if err := tx.QueryRowContext(ctx, query, settings.MaxEmployees, existingID).Scan(&settings.Version); err != nil {
			return err
		}
		settings.ID = existingID
	}

	return tx.Commit()
}
