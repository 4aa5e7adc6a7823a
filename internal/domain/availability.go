package domain

import "time"

type AvailabilitySlot struct {
	Date  time.Time   `json:"date"`
	Slots []ShiftType `json:"slots"`
}

// Availability 表示某个员工在某一周内愿意值的班次
// 每个 (employeeID, weekStartDate) 最多只有一条记录
type Availability struct {
	ID              int64              `json:"id"`
	EmployeeID      int64              `json:"employeeId"`
	WeekStartDate   time.Time          `json:"weekStartDate"`
	AvailableSlots  []AvailabilitySlot `json:"availableSlots"`
	MaxWorkingHours *int32             `json:"maxWorkingHours"` // 为 nil 时使用员工默认的每周最大工时
	CreatedAt       time.Time          `json:"createdAt"`
	Version         int32              `json:"-"`
}
