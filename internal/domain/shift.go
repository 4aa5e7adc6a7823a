package domain

import "time"

type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"   // 06:00 - 14:00
	ShiftAfternoon ShiftType = "afternoon" // 14:00 - 22:00
	ShiftNight     ShiftType = "night"     // 22:00 - 次日 06:00
)

// AllShiftTypes 按排班时的处理顺序排列
var AllShiftTypes = []ShiftType{ShiftMorning, ShiftAfternoon, ShiftNight}

// Window 返回某一天该班次的开始和结束时间，夜班跨越午夜
func (t ShiftType) Window(date time.Time) (start time.Time, end time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch t {
	case ShiftMorning:
		return day.Add(6 * time.Hour), day.Add(14 * time.Hour)
	case ShiftAfternoon:
		return day.Add(14 * time.Hour), day.Add(22 * time.Hour)
	case ShiftNight:
		return day.Add(22 * time.Hour), day.Add(30 * time.Hour)
	}

	return day, day
}

type ShiftStatus string

const (
	ShiftStatusPending   ShiftStatus = "pending"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
)

// ShiftEmployee 是展示用的员工信息
type ShiftEmployee struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Shift struct {
	ID           int64           `json:"id"`
	Date         time.Time       `json:"date"`
	Type         ShiftType       `json:"type"`
	EmployeeIDs  []int64         `json:"-"`
	Employees    []ShiftEmployee `json:"employees"`
	Status       ShiftStatus     `json:"status"`
	MinEmployees int32           `json:"minEmployees"`
	MaxEmployees int32           `json:"maxEmployees"`
	CreatedAt    time.Time       `json:"createdAt"`
	Version      int32           `json:"-"`
}
