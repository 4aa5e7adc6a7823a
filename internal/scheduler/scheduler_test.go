package scheduler

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func employee(id int64, level domain.SeniorityLevel, maxHours int32) *domain.Employee {
	return &domain.Employee{
		ID:              id,
		Name:            "员工",
		SeniorityLevel:  level,
		MaxHoursPerWeek: maxHours,
	}
}

func availabilityFor(employeeID int64, weekStart time.Time, slots map[int][]domain.ShiftType) *domain.Availability {
	availability := &domain.Availability{
		EmployeeID:    employeeID,
		WeekStartDate: weekStart,
	}
	for offset := 0; offset < 7; offset++ {
		if types, ok := slots[offset]; ok {
			availability.AvailableSlots = append(availability.AvailableSlots, domain.AvailabilitySlot{
				Date:  weekStart.AddDate(0, 0, offset),
				Slots: types,
			})
		}
	}
	return availability
}

func notificationMessages(result *Result) []string {
	messages := make([]string, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		messages = append(messages, n.Message)
	}
	return messages
}

func TestNew_InvalidParameters(t *testing.T) {
	employees := []*domain.Employee{employee(1, domain.SenioritySenior, 40)}

	testCases := []struct {
		name       string
		parameters *Parameters
	}{
		{
			name:       "缺少开始日期",
			parameters: &Parameters{EndDate: day(2025, 3, 7), MaxEmployeesPerShift: 3},
		},
		{
			name:       "缺少结束日期",
			parameters: &Parameters{StartDate: day(2025, 3, 1), MaxEmployeesPerShift: 3},
		},
		{
			name:       "结束日期早于开始日期",
			parameters: &Parameters{StartDate: day(2025, 3, 7), EndDate: day(2025, 3, 1), MaxEmployeesPerShift: 3},
		},
		{
			name:       "容量小于 1",
			parameters: &Parameters{StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 7), MaxEmployeesPerShift: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.parameters, employees, nil, newTestRNG())
			require.Error(t, err)
		})
	}
}

func TestSchedule_FullCrewWithSenior(t *testing.T) {
	d := day(2025, 3, 3)
	employees := []*domain.Employee{
		employee(1, domain.SenioritySenior, 40),
		employee(2, domain.SeniorityMid, 40),
		employee(3, domain.SeniorityMid, 40),
	}
	availabilities := []*domain.Availability{
		availabilityFor(1, d, map[int][]domain.ShiftType{0: {domain.ShiftMorning}}),
		availabilityFor(2, d, map[int][]domain.ShiftType{0: {domain.ShiftMorning}}),
		availabilityFor(3, d, map[int][]domain.ShiftType{0: {domain.ShiftMorning}}),
	}

	s, err := New(&Parameters{StartDate: d, EndDate: d, MaxEmployeesPerShift: 3}, employees, availabilities, newTestRNG())
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	shift := result.Shifts[0]
	assert.Equal(t, domain.ShiftMorning, shift.Type)
	assert.Equal(t, domain.ShiftStatusConfirmed, shift.Status)
	assert.Equal(t, int32(1), shift.MinEmployees)
	assert.Equal(t, int32(3), shift.MaxEmployees)
	assert.ElementsMatch(t, []int64{1, 2, 3}, shift.EmployeeIDs)

	// 早班排满了，不应该有关于早班的通知（下午和晚上没人提交空闲时间，会有各自的通知）
	for _, message := range notificationMessages(result) {
		assert.NotContains(t, message, "morning")
	}
}

func TestSchedule_NoSeniorSkipsCell(t *testing.T) {
	d := day(2025, 3, 3)
	employees := []*domain.Employee{
		employee(1, domain.SeniorityMid, 40),
		employee(2, domain.SeniorityJunior, 40),
	}
	availabilities := []*domain.Availability{
		availabilityFor(1, d, map[int][]domain.ShiftType{0: {domain.ShiftAfternoon}}),
		availabilityFor(2, d, map[int][]domain.ShiftType{0: {domain.ShiftAfternoon}}),
	}

	s, err := New(&Parameters{StartDate: d, EndDate: d, MaxEmployeesPerShift: 3}, employees, availabilities, newTestRNG())
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	assert.Empty(t, result.Shifts)

	found := false
	for _, message := range notificationMessages(result) {
		if strings.Contains(message, "No senior available") {
			assert.Contains(t, message, "afternoon")
			assert.Contains(t, message, "2025-03-03")
			found = true
		}
	}
	assert.True(t, found, "应该有一条缺少资深员工的通知")
}

func TestSchedule_NoEligibleEmployees(t *testing.T) {
	d := day(2025, 3, 3)
	employees := []*domain.Employee{employee(1, domain.SenioritySenior, 40)}

	// 没有任何空闲时间提交
	s, err := New(&Parameters{StartDate: d, EndDate: d, MaxEmployeesPerShift: 3}, employees, nil, newTestRNG())
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	assert.Empty(t, result.Shifts)
	require.Len(t, result.Notifications, 3)
	for _, n := range result.Notifications {
		assert.Contains(t, n.Message, "No eligible employees")
		assert.Equal(t, domain.NotificationStatusPending, n.Status)
	}
}

func TestSchedule_PartialFill(t *testing.T) {
	d := day(2025, 3, 3)
	employees := []*domain.Employee{
		employee(1, domain.SenioritySenior, 40),
		employee(2, domain.SeniorityMid, 40),
	}
	availabilities := []*domain.Availability{
		availabilityFor(1, d, map[int][]domain.ShiftType{0: {domain.ShiftMorning}}),
		availabilityFor(2, d, map[int][]domain.ShiftType{0: {domain.ShiftMorning}}),
	}

	s, err := New(&Parameters{StartDate: d, EndDate: d, MaxEmployeesPerShift: 3}, employees, availabilities, newTestRNG())
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	assert.Len(t, result.Shifts[0].EmployeeIDs, 2)
	assert.Equal(t, domain.ShiftStatusConfirmed, result.Shifts[0].Status)

	found := false
	for _, message := range notificationMessages(result) {
		if strings.Contains(message, "partially filled (2/3)") {
			found = true
		}
	}
	assert.True(t, found, "应该有一条未排满的通知")
}

func TestSchedule_HourCapLimitsShiftCount(t *testing.T) {
	weekStart := day(2025, 3, 3)
	morningOnly := map[int][]domain.ShiftType{
		0: {domain.ShiftMorning},
		1: {domain.ShiftMorning},
		2: {domain.ShiftMorning},
		3: {domain.ShiftMorning},
	}
	employees := []*domain.Employee{
		employee(1, domain.SenioritySenior, 40),
		employee(2, domain.SeniorityMid, 24), // floor(24/8) = 3 个班次
	}
	availabilities := []*domain.Availability{
		availabilityFor(1, weekStart, morningOnly),
		availabilityFor(2, weekStart, morningOnly),
	}

	s, err := New(&Parameters{StartDate: weekStart, EndDate: weekStart.AddDate(0, 0, 3), MaxEmployeesPerShift: 2}, employees, availabilities, newTestRNG())
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.Shifts, 4)

	cappedCount := 0
	for _, shift := range result.Shifts {
		for _, employeeID := range shift.EmployeeIDs {
			if employeeID == 2 {
				cappedCount++
			}
		}
	}
	assert.Equal(t, 3, cappedCount, "工时上限为 24 的员工最多值 3 个班次")
}

func TestSchedule_WeeklyOverrideReplacesDefaultCap(t *testing.T) {
	weekStart := day(2025, 3, 3)
	morningOnly := map[int][]domain.ShiftType{
		0: {domain.ShiftMorning},
		1: {domain.ShiftMorning},
	}
	override := int32(8) // 本周只能值 1 个班次

	seniorAvailability := availabilityFor(1, weekStart, morningOnly)
	midAvailability := availabilityFor(2, weekStart, morningOnly)
	midAvailability.MaxWorkingHours = &override

	employees := []*domain.Employee{
		employee(1, domain.SenioritySenior, 40),
		employee(2, domain.SeniorityMid, 40),
	}

	s, err := New(
		&Parameters{StartDate: weekStart, EndDate: weekStart.AddDate(0, 0, 1), MaxEmployeesPerShift: 2},
		employees,
		[]*domain.Availability{seniorAvailability, midAvailability},
		newTestRNG(),
	)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	midCount := 0
	for _, shift := range result.Shifts {
		for _, employeeID := range shift.EmployeeIDs {
			if employeeID == 2 {
				midCount++
			}
		}
	}
	assert.Equal(t, 1, midCount)
}

func TestSchedule_RestGapExcludesNightThenMorning(t *testing.T) {
	weekStart := day(2025, 3, 3)
	employees := []*domain.Employee{
		employee(1, domain.SenioritySenior, 40),
		employee(2, domain.SenioritySenior, 40),
	}
	availabilities := []*domain.Availability{
		// 员工 1 值完第一天的晚班后（次日 06:00 结束），不能再值次日 06:00 开始的早班
		availabilityFor(1, weekStart, map[int][]domain.ShiftType{
			0: {domain.ShiftNight},
			1: {domain.ShiftMorning},
		}),
		availabilityFor(2, weekStart, map[int][]domain.ShiftType{
			1: {domain.ShiftMorning},
		}),
	}

	s, err := New(&Parameters{StartDate: weekStart, EndDate: weekStart.AddDate(0, 0, 1), MaxEmployeesPerShift: 3}, employees, availabilities, newTestRNG())
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, result.Shifts, 2)

	var morningShift *domain.Shift
	for _, shift := range result.Shifts {
		if shift.Type == domain.ShiftMorning {
			morningShift = shift
		}
	}
	require.NotNil(t, morningShift)
	assert.Equal(t, []int64{2}, morningShift.EmployeeIDs)
}

func TestSchedule_DeterministicWithSeededRNG(t *testing.T) {
	weekStart := day(2025, 3, 3)
	allTypes := map[int][]domain.ShiftType{
		0: domain.AllShiftTypes, 1: domain.AllShiftTypes, 2: domain.AllShiftTypes,
		3: domain.AllShiftTypes, 4: domain.AllShiftTypes, 5: domain.AllShiftTypes, 6: domain.AllShiftTypes,
	}

	run := func() *Result {
		employees := []*domain.Employee{
			employee(1, domain.SenioritySenior, 40),
			employee(2, domain.SenioritySenior, 40),
			employee(3, domain.SeniorityMid, 40),
			employee(4, domain.SeniorityMid, 40),
			employee(5, domain.SeniorityJunior, 40),
			employee(6, domain.SeniorityJunior, 40),
		}
		availabilities := make([]*domain.Availability, 0, len(employees))
		for _, emp := range employees {
			availabilities = append(availabilities, availabilityFor(emp.ID, weekStart, allTypes))
		}

		s, err := New(
			&Parameters{StartDate: weekStart, EndDate: weekStart.AddDate(0, 0, 6), MaxEmployeesPerShift: 3},
			employees,
			availabilities,
			rand.New(rand.NewSource(7)),
		)
		require.NoError(t, err)

		result, err := s.Schedule()
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	require.Len(t, second.Shifts, len(first.Shifts))
	for i := range first.Shifts {
		assert.Equal(t, first.Shifts[i].Type, second.Shifts[i].Type)
		assert.Equal(t, first.Shifts[i].Date, second.Shifts[i].Date)
		assert.Equal(t, first.Shifts[i].EmployeeIDs, second.Shifts[i].EmployeeIDs)
	}
}

// 在一个规模稍大的场景下检查所有硬性约束
func TestSchedule_InvariantsHold(t *testing.T) {
	weekStart := day(2025, 3, 3)
	allTypes := map[int][]domain.ShiftType{
		0: domain.AllShiftTypes, 1: domain.AllShiftTypes, 2: domain.AllShiftTypes,
		3: domain.AllShiftTypes, 4: domain.AllShiftTypes, 5: domain.AllShiftTypes, 6: domain.AllShiftTypes,
	}

	employees := []*domain.Employee{
		employee(1, domain.SenioritySenior, 40),
		employee(2, domain.SenioritySenior, 32),
		employee(3, domain.SeniorityMid, 24),
		employee(4, domain.SeniorityMid, 60),
		employee(5, domain.SeniorityJunior, 40),
		employee(6, domain.SeniorityJunior, 20),
	}
	availabilities := make([]*domain.Availability, 0, len(employees))
	for _, emp := range employees {
		availabilities = append(availabilities, availabilityFor(emp.ID, weekStart, allTypes))
	}

	capacity := int32(3)
	s, err := New(
		&Parameters{StartDate: weekStart, EndDate: weekStart.AddDate(0, 0, 6), MaxEmployeesPerShift: capacity},
		employees,
		availabilities,
		newTestRNG(),
	)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)
	require.NotEmpty(t, result.Shifts)

	seniorIDs := map[int64]bool{1: true, 2: true}
	shiftCounts := make(map[int64]int)
	lastEnds := make(map[int64]time.Time)

	for _, shift := range result.Shifts {
		assert.LessOrEqual(t, len(shift.EmployeeIDs), int(capacity))
		assert.GreaterOrEqual(t, len(shift.EmployeeIDs), 1)

		seen := make(map[int64]bool)
		hasSenior := false
		for _, employeeID := range shift.EmployeeIDs {
			assert.False(t, seen[employeeID], "同一个班次中不应该有重复员工")
			seen[employeeID] = true
			if seniorIDs[employeeID] {
				hasSenior = true
			}
			shiftCounts[employeeID]++
		}
		assert.True(t, hasSenior, "每个班次都必须有资深员工")

		start, end := shift.Type.Window(shift.Date)
		for _, employeeID := range shift.EmployeeIDs {
			if lastEnd, ok := lastEnds[employeeID]; ok {
				assert.GreaterOrEqual(t, start.Sub(lastEnd), MinRestGap)
			}
			lastEnds[employeeID] = end
		}
	}

	for _, emp := range employees {
		limit := int(min(emp.MaxHoursPerWeek/ShiftDuration, MaxShiftsPerRun))
		assert.LessOrEqual(t, shiftCounts[emp.ID], limit, "员工 %d 的班次数超过了上限", emp.ID)
	}
}

func TestDropOccupiedCells(t *testing.T) {
	d := day(2025, 3, 3)
	shiftAt := func(offset int, shiftType domain.ShiftType) *domain.Shift {
		return &domain.Shift{Date: d.AddDate(0, 0, offset), Type: shiftType}
	}

	testCases := []struct {
		name     string
		proposed []*domain.Shift
		existing []*domain.Shift
		want     []*domain.Shift
	}{
		{
			name:     "没有已存在的班次时全部保留",
			proposed: []*domain.Shift{shiftAt(0, domain.ShiftMorning), shiftAt(0, domain.ShiftNight)},
			existing: []*domain.Shift{},
			want:     []*domain.Shift{shiftAt(0, domain.ShiftMorning), shiftAt(0, domain.ShiftNight)},
		},
		{
			name:     "相同格子被去掉",
			proposed: []*domain.Shift{shiftAt(0, domain.ShiftMorning), shiftAt(0, domain.ShiftAfternoon)},
			existing: []*domain.Shift{shiftAt(0, domain.ShiftMorning)},
			want:     []*domain.Shift{shiftAt(0, domain.ShiftAfternoon)},
		},
		{
			name:     "同一天的不同班次类型不算冲突",
			proposed: []*domain.Shift{shiftAt(0, domain.ShiftNight)},
			existing: []*domain.Shift{shiftAt(0, domain.ShiftMorning), shiftAt(0, domain.ShiftAfternoon)},
			want:     []*domain.Shift{shiftAt(0, domain.ShiftNight)},
		},
		{
			name:     "不同日期的相同班次类型不算冲突",
			proposed: []*domain.Shift{shiftAt(1, domain.ShiftMorning)},
			existing: []*domain.Shift{shiftAt(0, domain.ShiftMorning)},
			want:     []*domain.Shift{shiftAt(1, domain.ShiftMorning)},
		},
		{
			name:     "全部已存在时结果为空",
			proposed: []*domain.Shift{shiftAt(0, domain.ShiftMorning), shiftAt(1, domain.ShiftNight)},
			existing: []*domain.Shift{shiftAt(1, domain.ShiftNight), shiftAt(0, domain.ShiftMorning)},
			want:     []*domain.Shift{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kept := DropOccupiedCells(tc.proposed, tc.existing)

			require.Len(t, kept, len(tc.want))
			for i, shift := range kept {
				assert.Equal(t, tc.want[i].Date, shift.Date)
				assert.Equal(t, tc.want[i].Type, shift.Type)
			}
		})
	}
}
