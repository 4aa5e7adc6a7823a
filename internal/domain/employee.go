package domain

import (
	"time"
)

type SeniorityLevel string

const (
	SeniorityJunior SeniorityLevel = "junior"
	SeniorityMid    SeniorityLevel = "mid"
	SenioritySenior SeniorityLevel = "senior"
)

// DefaultMaxHoursPerWeek 当员工没有设置每周最大工时时使用
const DefaultMaxHoursPerWeek int32 = 40

type Employee struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	SeniorityLevel  SeniorityLevel `json:"seniorityLevel"`
	MaxHoursPerWeek int32          `json:"maxHoursPerWeek"`
	IsActive        bool           `json:"isActive"`
	CreatedAt       time.Time      `json:"createdAt"`
	Version         int32          `json:"-"`
}
