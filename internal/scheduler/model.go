package scheduler

import (
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

// 排班相关的硬性约束
const (
	MinRestGap       = 12 * time.Hour // 两个班次之间的最小休息时间
	ShiftDuration    = 8              // 每个班次的工时
	MaxShiftsPerRun  = 5              // 单次排班中每个员工最多值的班次数
	MinEmployeeCount = 1
)

// Parameters 控制一次排班运行
type Parameters struct {
	StartDate            time.Time
	EndDate              time.Time
	MaxEmployeesPerShift int32 // 在运行开始时从排班设置中解析一次，之后不再变化
}

// state 是一次运行内的计数器
// 每生成一个班次就更新一次，后续格子的筛选都依赖它，因此格子之间严格串行
type state struct {
	shiftCounts   map[int64]int32                          // employeeID -> 已分配的班次总数
	typeCounts    map[int64]map[domain.ShiftType]int32     // employeeID -> 各类型班次数
	lastShiftEnds map[int64]time.Time                      // employeeID -> 最近一个班次的结束时间
}

func newState() *state {
	return &state{
		shiftCounts:   make(map[int64]int32),
		typeCounts:    make(map[int64]map[domain.ShiftType]int32),
		lastShiftEnds: make(map[int64]time.Time),
	}
}

func (st *state) record(crew []*domain.Employee, shiftType domain.ShiftType, shiftEnd time.Time) {
	for _, emp := range crew {
		st.shiftCounts[emp.ID]++
		if _, exists := st.typeCounts[emp.ID]; !exists {
			st.typeCounts[emp.ID] = make(map[domain.ShiftType]int32)
		}
		st.typeCounts[emp.ID][shiftType]++
		st.lastShiftEnds[emp.ID] = shiftEnd
	}
}

// Result 是一次排班运行的完整输出
type Result struct {
	Shifts        []*domain.Shift
	Notifications []*domain.Notification
}
