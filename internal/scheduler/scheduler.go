package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/bhatbazik/Automated-employee-shift/internal/utils"
)

type Scheduler struct {
	parameters     *Parameters
	employees      []*domain.Employee
	availabilities []*domain.Availability              // 仅做最后的校验使用
	availableMap   map[int64]map[string][]domain.ShiftType // {employeeID: {isoDate: [shiftType1, shiftType2, ...]}}
	hourOverrides  map[int64]map[string]int32              // {employeeID: {isoDate: 本周最大工时}}
	rng            *rand.Rand
}

// New 构建一次排班运行
// rng 可以传入固定种子的随机源来得到可复现的结果，传 nil 则使用时间种子
func New(parameters *Parameters, employees []*domain.Employee, availabilities []*domain.Availability, rng *rand.Rand) (*Scheduler, error) {
	if parameters.StartDate.IsZero() || parameters.EndDate.IsZero() {
		return nil, errors.New("排班的开始日期和结束日期不能为空")
	}
	if parameters.EndDate.Before(parameters.StartDate) {
		return nil, errors.New("排班的结束日期不能早于开始日期")
	}
	if parameters.MaxEmployeesPerShift < MinEmployeeCount {
		return nil, fmt.Errorf("每个班次的最大员工数不能小于 %d", MinEmployeeCount)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Scheduler{
		parameters:     parameters,
		employees:      employees,
		availabilities: availabilities,
		availableMap:   make(map[int64]map[string][]domain.ShiftType),
		hourOverrides:  make(map[int64]map[string]int32),
		rng:            rng,
	}

	for _, availability := range availabilities {
		employeeID := availability.EmployeeID

		if _, exists := s.availableMap[employeeID]; !exists {
			s.availableMap[employeeID] = make(map[string][]domain.ShiftType)
		}

		for _, slot := range availability.AvailableSlots {
			key := slot.Date.Format(time.DateOnly)
			s.availableMap[employeeID][key] = append(s.availableMap[employeeID][key], slot.Slots...)

			// 周内的工时上限覆盖挂在具体日期上，查找时不需要再换算周起始日
			if availability.MaxWorkingHours != nil {
				if _, exists := s.hourOverrides[employeeID]; !exists {
					s.hourOverrides[employeeID] = make(map[string]int32)
				}
				s.hourOverrides[employeeID][key] = *availability.MaxWorkingHours
			}
		}
	}

	return s, nil
}

// Schedule 依次处理日期范围内的每个 (日期, 班次类型) 格子
// 前面格子产生的计数会影响后面格子的筛选，所以不能并行
func (s *Scheduler) Schedule() (*Result, error) {
	st := newState()
	result := &Result{
		Shifts:        make([]*domain.Shift, 0),
		Notifications: make([]*domain.Notification, 0),
	}

	startDay := truncateToDay(s.parameters.StartDate)
	endDay := truncateToDay(s.parameters.EndDate)

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		for _, shiftType := range domain.AllShiftTypes {
			shiftStart, shiftEnd := shiftType.Window(day)

			pool := s.eligibleEmployees(day, shiftType, shiftStart, st)
			if len(pool) == 0 {
				result.Notifications = append(result.Notifications, &domain.Notification{
					Message: fmt.Sprintf("No eligible employees for %s shift on %s", shiftType, day.Format(time.DateOnly)),
					Date:    shiftStart,
					Status:  domain.NotificationStatusPending,
				})
				continue
			}

			crew := s.selectCrew(pool, shiftType, st)
			if crew == nil {
				result.Notifications = append(result.Notifications, &domain.Notification{
					Message: fmt.Sprintf("No senior available for %s shift on %s", shiftType, day.Format(time.DateOnly)),
					Date:    shiftStart,
					Status:  domain.NotificationStatusPending,
				})
				continue
			}

			if len(crew) < int(s.parameters.MaxEmployeesPerShift) {
				result.Notifications = append(result.Notifications, &domain.Notification{
					Message: fmt.Sprintf("Shift partially filled (%d/%d) for %s shift on %s", len(crew), s.parameters.MaxEmployeesPerShift, shiftType, day.Format(time.DateOnly)),
					Date:    shiftStart,
					Status:  domain.NotificationStatusPending,
				})
			}

			employeeIDs := make([]int64, len(crew))
			for i, emp := range crew {
				employeeIDs[i] = emp.ID
			}

			result.Shifts = append(result.Shifts, &domain.Shift{
				Date:         day,
				Type:         shiftType,
				EmployeeIDs:  employeeIDs,
				Status:       domain.ShiftStatusConfirmed,
				MinEmployees: MinEmployeeCount,
				MaxEmployees: s.parameters.MaxEmployeesPerShift,
			})

			st.record(crew, shiftType, shiftEnd)
		}
	}

	// 返回前把结果再校验一遍，排班算法的约束一个都不能漏
	if err := utils.ValidateShiftCrews(result.Shifts, s.employees); err != nil {
		return nil, err
	}
	if err := utils.ValidateShiftsWithAvailabilities(result.Shifts, s.availabilities); err != nil {
		return nil, err
	}
	if err := utils.ValidateRestGaps(result.Shifts, MinRestGap); err != nil {
		return nil, err
	}

	return result, nil
}
