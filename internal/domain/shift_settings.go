package domain

// DefaultMaxEmployeesPerShift 数据库中没有设置记录时使用
const DefaultMaxEmployeesPerShift int32 = 3

// ShiftSettings 是全局唯一的排班设置
type ShiftSettings struct {
	ID           int64 `json:"id"`
	MaxEmployees int32 `json:"maxEmployees"`
	Version      int32 `json:"-"`
}
