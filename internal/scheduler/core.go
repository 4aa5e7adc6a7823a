package scheduler

import (
	"slices"
	"sort"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

// eligibleEmployees 对员工池依次应用三个过滤条件：
//  1. 当天提交过该班次的空闲时间
//  2. 已分配的班次数没有超过工时上限换算出来的班次上限
//  3. 距离上一个班次的结束时间至少 12 小时
func (s *Scheduler) eligibleEmployees(day time.Time, shiftType domain.ShiftType, shiftStart time.Time, st *state) []*domain.Employee {
	key := day.Format(time.DateOnly)

	pool := make([]*domain.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		if !slices.Contains(s.availableMap[emp.ID][key], shiftType) {
			continue
		}

		if st.shiftCounts[emp.ID] >= s.maxShiftsFor(emp, key) {
			continue
		}

		if lastEnd, exists := st.lastShiftEnds[emp.ID]; exists && shiftStart.Sub(lastEnd) < MinRestGap {
			continue
		}

		pool = append(pool, emp)
	}

	return pool
}

// maxShiftsFor 把员工的有效最大工时换算成班次数上限
// 有效最大工时优先取当周提交的覆盖值，否则取员工默认值
func (s *Scheduler) maxShiftsFor(emp *domain.Employee, dateKey string) int32 {
	maxHours := emp.MaxHoursPerWeek
	if maxHours <= 0 {
		maxHours = domain.DefaultMaxHoursPerWeek
	}
	if override, exists := s.hourOverrides[emp.ID][dateKey]; exists {
		maxHours = override
	}

	return min(maxHours/ShiftDuration, MaxShiftsPerRun)
}

// selectCrew 从合格的员工池中选出一个班次的员工
// 每个班次必须至少有一个资深员工，选不出来时返回 nil，调用方跳过这个格子
func (s *Scheduler) selectCrew(pool []*domain.Employee, shiftType domain.ShiftType, st *state) []*domain.Employee {
	seniors := make([]*domain.Employee, 0, len(pool))
	for _, emp := range pool {
		if isSenior(emp) {
			seniors = append(seniors, emp)
		}
	}
	if len(seniors) == 0 {
		return nil
	}

	// 先打乱再稳定排序，计数相同的员工之间不会产生固定的偏好
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.rng.Shuffle(len(seniors), func(i, j int) {
		seniors[i], seniors[j] = seniors[j], seniors[i]
	})

	// 公平性：优先选择总班次数少的，总数相同时优先选择该类型班次数少的
	sort.SliceStable(pool, func(i, j int) bool {
		if st.shiftCounts[pool[i].ID] != st.shiftCounts[pool[j].ID] {
			return st.shiftCounts[pool[i].ID] < st.shiftCounts[pool[j].ID]
		}
		return st.typeCounts[pool[i].ID][shiftType] < st.typeCounts[pool[j].ID][shiftType]
	})
	// 资深员工只按总班次数排序
	sort.SliceStable(seniors, func(i, j int) bool {
		return st.shiftCounts[seniors[i].ID] < st.shiftCounts[seniors[j].ID]
	})

	chosenSenior := seniors[0]
	crew := []*domain.Employee{chosenSenior}

	for _, emp := range pool {
		if len(crew) >= int(s.parameters.MaxEmployeesPerShift) {
			break
		}
		if emp.ID == chosenSenior.ID {
			continue
		}
		crew = append(crew, emp)
	}

	return crew
}
