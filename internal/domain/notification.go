package domain

import "time"

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusRead    NotificationStatus = "read"
)

// Notification 记录排班过程中无法正常排满某个班次的提示信息
type Notification struct {
	ID        int64              `json:"id"`
	Message   string             `json:"message"`
	Date      time.Time          `json:"date"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}
