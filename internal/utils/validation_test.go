package utils

import (
	"testing"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func testEmployees() []*domain.Employee {
	return []*domain.Employee{
		{ID: 1, SeniorityLevel: domain.SenioritySenior},
		{ID: 2, SeniorityLevel: domain.SeniorityMid},
		{ID: 3, SeniorityLevel: domain.SeniorityJunior},
	}
}

func TestValidateShiftCrews(t *testing.T) {
	testCases := []struct {
		name    string
		shift   *domain.Shift
		wantErr bool
	}{
		{
			name: "正常的班次",
			shift: &domain.Shift{
				Date: testDay, Type: domain.ShiftMorning,
				EmployeeIDs: []int64{1, 2}, MinEmployees: 1, MaxEmployees: 3,
			},
		},
		{
			name: "存在重复员工",
			shift: &domain.Shift{
				Date: testDay, Type: domain.ShiftMorning,
				EmployeeIDs: []int64{1, 1}, MinEmployees: 1, MaxEmployees: 3,
			},
			wantErr: true,
		},
		{
			name: "超过最大人数",
			shift: &domain.Shift{
				Date: testDay, Type: domain.ShiftMorning,
				EmployeeIDs: []int64{1, 2, 3, 2}, MinEmployees: 1, MaxEmployees: 3,
			},
			wantErr: true,
		},
		{
			name: "没有资深员工",
			shift: &domain.Shift{
				Date: testDay, Type: domain.ShiftMorning,
				EmployeeIDs: []int64{2, 3}, MinEmployees: 1, MaxEmployees: 3,
			},
			wantErr: true,
		},
		{
			name: "人数不足",
			shift: &domain.Shift{
				Date: testDay, Type: domain.ShiftMorning,
				EmployeeIDs: []int64{}, MinEmployees: 1, MaxEmployees: 3,
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateShiftCrews([]*domain.Shift{tc.shift}, testEmployees())
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateShiftsWithAvailabilities(t *testing.T) {
	availabilities := []*domain.Availability{
		{
			EmployeeID:    1,
			WeekStartDate: testDay,
			AvailableSlots: []domain.AvailabilitySlot{
				{Date: testDay, Slots: []domain.ShiftType{domain.ShiftMorning}},
			},
		},
	}

	okShift := &domain.Shift{Date: testDay, Type: domain.ShiftMorning, EmployeeIDs: []int64{1}, MinEmployees: 1, MaxEmployees: 3}
	require.NoError(t, ValidateShiftsWithAvailabilities([]*domain.Shift{okShift}, availabilities))

	wrongType := &domain.Shift{Date: testDay, Type: domain.ShiftNight, EmployeeIDs: []int64{1}, MinEmployees: 1, MaxEmployees: 3}
	assert.Error(t, ValidateShiftsWithAvailabilities([]*domain.Shift{wrongType}, availabilities))

	noSubmission := &domain.Shift{Date: testDay, Type: domain.ShiftMorning, EmployeeIDs: []int64{2}, MinEmployees: 1, MaxEmployees: 3}
	assert.Error(t, ValidateShiftsWithAvailabilities([]*domain.Shift{noSubmission}, availabilities))
}

func TestValidateRestGaps(t *testing.T) {
	night := &domain.Shift{Date: testDay, Type: domain.ShiftNight, EmployeeIDs: []int64{1}}
	nextMorning := &domain.Shift{Date: testDay.AddDate(0, 0, 1), Type: domain.ShiftMorning, EmployeeIDs: []int64{1}}

	// 晚班次日 06:00 结束，次日早班 06:00 开始，间隔为 0
	assert.Error(t, ValidateRestGaps([]*domain.Shift{night, nextMorning}, 12*time.Hour))

	// 次日午班 14:00 开始，间隔只有 8 小时
	nextAfternoon := &domain.Shift{Date: testDay.AddDate(0, 0, 1), Type: domain.ShiftAfternoon, EmployeeIDs: []int64{1}}
	assert.Error(t, ValidateRestGaps([]*domain.Shift{night, nextAfternoon}, 12*time.Hour))

	// 连续两天的晚班，06:00 结束到 22:00 开始，间隔 16 小时
	nextNight := &domain.Shift{Date: testDay.AddDate(0, 0, 1), Type: domain.ShiftNight, EmployeeIDs: []int64{1}}
	assert.NoError(t, ValidateRestGaps([]*domain.Shift{night, nextNight}, 12*time.Hour))
}

func TestValidateAvailabilityWeek(t *testing.T) {
	valid := &domain.Availability{
		EmployeeID:    1,
		WeekStartDate: testDay,
		AvailableSlots: []domain.AvailabilitySlot{
			{Date: testDay, Slots: []domain.ShiftType{domain.ShiftMorning}},
			{Date: testDay.AddDate(0, 0, 6), Slots: []domain.ShiftType{domain.ShiftNight}},
		},
	}
	require.NoError(t, ValidateAvailabilityWeek(valid))

	outsideWeek := &domain.Availability{
		EmployeeID:    1,
		WeekStartDate: testDay,
		AvailableSlots: []domain.AvailabilitySlot{
			{Date: testDay.AddDate(0, 0, 7), Slots: []domain.ShiftType{domain.ShiftMorning}},
		},
	}
	assert.Error(t, ValidateAvailabilityWeek(outsideWeek))

	duplicateDay := &domain.Availability{
		EmployeeID:    1,
		WeekStartDate: testDay,
		AvailableSlots: []domain.AvailabilitySlot{
			{Date: testDay, Slots: []domain.ShiftType{domain.ShiftMorning}},
			{Date: testDay, Slots: []domain.ShiftType{domain.ShiftNight}},
		},
	}
	assert.Error(t, ValidateAvailabilityWeek(duplicateDay))

	invalidType := &domain.Availability{
		EmployeeID:    1,
		WeekStartDate: testDay,
		AvailableSlots: []domain.AvailabilitySlot{
			{Date: testDay, Slots: []domain.ShiftType{"midnight"}},
		},
	}
	assert.Error(t, ValidateAvailabilityWeek(invalidType))
}
