package utils

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

// ValidateShiftCrews 检查每个班次的人员构成：
// 人数在 [minEmployees, maxEmployees] 之内、没有重复员工、至少有一个资深员工
func ValidateShiftCrews(shifts []*domain.Shift, employees []*domain.Employee) error {
	seniorityByID := make(map[int64]domain.SeniorityLevel, len(employees))
	for _, emp := range employees {
		seniorityByID[emp.ID] = emp.SeniorityLevel
	}

	for _, shift := range shifts {
		if len(shift.EmployeeIDs) < int(shift.MinEmployees) {
			return fmt.Errorf("%s 的 %s 班次的员工数少于最小要求 %d", shift.Date.Format(time.DateOnly), shift.Type, shift.MinEmployees)
		}
		if len(shift.EmployeeIDs) > int(shift.MaxEmployees) {
			return fmt.Errorf("%s 的 %s 班次的员工数超过了最大限制 %d", shift.Date.Format(time.DateOnly), shift.Type, shift.MaxEmployees)
		}

		seen := make(map[int64]bool)
		hasSenior := false
		for _, employeeID := range shift.EmployeeIDs {
			if seen[employeeID] {
				return fmt.Errorf("%s 的 %s 班次中存在重复员工 %d", shift.Date.Format(time.DateOnly), shift.Type, employeeID)
			}
			seen[employeeID] = true

			if seniorityByID[employeeID] == domain.SenioritySenior {
				hasSenior = true
			}
		}

		if !hasSenior {
			return fmt.Errorf("%s 的 %s 班次中没有资深员工", shift.Date.Format(time.DateOnly), shift.Type)
		}
	}

	return nil
}

func getAvailabilityForDate(availabilities []*domain.Availability, employeeID int64, date time.Time) *domain.AvailabilitySlot {
	for _, availability := range availabilities {
		if availability.EmployeeID != employeeID {
			continue
		}
		for i := range availability.AvailableSlots {
			if sameDay(availability.AvailableSlots[i].Date, date) {
				return &availability.AvailableSlots[i]
			}
		}
	}
	return nil
}

// ValidateShiftsWithAvailabilities 检查排班结果中的每个员工当天确实提交过该班次的空闲时间
func ValidateShiftsWithAvailabilities(shifts []*domain.Shift, availabilities []*domain.Availability) error {
	for _, shift := range shifts {
		for _, employeeID := range shift.EmployeeIDs {
			slot := getAvailabilityForDate(availabilities, employeeID, shift.Date)
			if slot == nil {
				return fmt.Errorf("id 为 %d 的员工在 %s 没有提交空闲时间", employeeID, shift.Date.Format(time.DateOnly))
			}
			if !slices.Contains(slot.Slots, shift.Type) {
				return fmt.Errorf("id 为 %d 的员工在 %s 没有提交 %s 班次的空闲时间", employeeID, shift.Date.Format(time.DateOnly), shift.Type)
			}
		}
	}

	return nil
}

// ValidateRestGaps 检查每个员工相邻两个班次之间的休息时间不小于 minGap
func ValidateRestGaps(shifts []*domain.Shift, minGap time.Duration) error {
	type window struct {
		start time.Time
		end   time.Time
	}

	windowsByEmployee := make(map[int64][]window)
	for _, shift := range shifts {
		start, end := shift.Type.Window(shift.Date)
		for _, employeeID := range shift.EmployeeIDs {
			windowsByEmployee[employeeID] = append(windowsByEmployee[employeeID], window{start: start, end: end})
		}
	}

	for employeeID, windows := range windowsByEmployee {
		sort.Slice(windows, func(i, j int) bool {
			return windows[i].start.Before(windows[j].start)
		})

		for i := 1; i < len(windows); i++ {
			if windows[i].start.Sub(windows[i-1].end) < minGap {
				return fmt.Errorf("id 为 %d 的员工在 %s 开始的班次与上一个班次的间隔不足 %v", employeeID, windows[i].start.Format(time.DateTime), minGap)
			}
		}
	}

	return nil
}

// ValidateAvailabilityWeek 检查提交的空闲时间是否落在所声明的那一周内，且同一天只出现一次
func ValidateAvailabilityWeek(availability *domain.Availability) error {
	weekStart := availability.WeekStartDate
	weekEnd := weekStart.AddDate(0, 0, 7)

	seenDays := make(map[string]bool)
	for i, slot := range availability.AvailableSlots {
		if slot.Date.Before(weekStart) || !slot.Date.Before(weekEnd) {
			return fmt.Errorf("第 %d 项的日期不在所提交的周内", i+1)
		}

		key := slot.Date.Format(time.DateOnly)
		if seenDays[key] {
			return fmt.Errorf("日期 %s 被重复提交", key)
		}
		seenDays[key] = true

		for _, shiftType := range slot.Slots {
			if !slices.Contains(domain.AllShiftTypes, shiftType) {
				return fmt.Errorf("第 %d 项中存在无效的班次类型 %s", i+1, shiftType)
			}
		}
	}

	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
