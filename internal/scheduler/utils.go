package scheduler

import (
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

func isSenior(emp *domain.Employee) bool {
	return emp.SeniorityLevel == domain.SenioritySenior
}

func cellKey(shift *domain.Shift) string {
	return shift.Date.Format(time.DateOnly) + "/" + string(shift.Type)
}

// DropOccupiedCells 去掉已经被持久化的 (日期, 班次类型) 格子对应的班次
// 对同一个日期范围重复排班时只会补上缺失的格子，不会产生重复班次
func DropOccupiedCells(proposed []*domain.Shift, existing []*domain.Shift) []*domain.Shift {
	occupied := make(map[string]bool, len(existing))
	for _, shift := range existing {
		occupied[cellKey(shift)] = true
	}

	kept := make([]*domain.Shift, 0, len(proposed))
	for _, shift := range proposed {
		if occupied[cellKey(shift)] {
			continue
		}
		kept = append(kept, shift)
	}

	return kept
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
