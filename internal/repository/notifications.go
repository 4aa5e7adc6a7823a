package repository

import (
	"context"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

func (r *Repository) GetAllNotifications() ([]*domain.Notification, error) {
	query := `
		SELECT id, message, date, status, created_at
		FROM notifications
		ORDER BY date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		notification := &domain.Notification{}
		dst := []any{&notification.ID, &notification.Message, &notification.Date, &notification.Status, &notification.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *Repository) MarkNotificationRead(id int64) (*domain.Notification, error) {
	query := `
		UPDATE notifications
		SET status = $1
		WHERE id = $2
		RETURNING message, date, status, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	notification := &domain.Notification{
		ID: id,
	}

	dst := []any{&notification.Message, &notification.Date, &notification.Status, &notification.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, domain.NotificationStatusRead, id).Scan(dst...); err != nil {
		return nil, err
	}

	return notification, nil
}
