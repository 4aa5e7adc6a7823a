package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/bhatbazik/Automated-employee-shift/internal/repository"
)

var shiftHeaderMap = map[string]domain.ShiftType{
	"早班": domain.ShiftMorning,
	"午班": domain.ShiftAfternoon,
	"晚班": domain.ShiftNight,
}

var seniorityHeaderMap = map[string]domain.SeniorityLevel{
	"初级": domain.SeniorityJunior,
	"中级": domain.SeniorityMid,
	"高级": domain.SenioritySenior,
}

// SeedRosterData 从 CSV 花名册导入员工及其下一周的空闲时间
// 班次列中填写 "1, 3, 5" 这样的数字，表示从 weekStartDate 开始的第几天有空
func SeedRosterData(r *repository.Repository, weekStartDate time.Time) {
	file, err := os.Open("./internal/seed/data/roster.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	shiftHeaderArray := []string{}
	for _, header := range headers {
		if _, ok := shiftHeaderMap[header]; ok {
			shiftHeaderArray = append(shiftHeaderArray, header)
		}
	}
	if len(shiftHeaderArray) == 0 {
		slog.Error("没有找到班次列")
		return
	}

	// 读取数据
	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// 插入员工及其空闲时间到数据库中
	for _, record := range records {
		email := record["邮箱"]
		if email == "" {
			slog.Error("没有找到邮箱", "record", record)
			continue
		}

		employee, err := r.GetEmployeeByEmail(email)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				// 表示该员工不在数据库中，需要新建并插入
				level, ok := seniorityHeaderMap[record["级别"]]
				if !ok {
					slog.Error("员工级别非法", "级别", record["级别"])
					continue
				}

				maxHours := domain.DefaultMaxHoursPerWeek
				if record["每周最大工时"] != "" {
					hours, err := strconv.Atoi(record["每周最大工时"])
					if err != nil {
						slog.Error("转换每周最大工时失败", "每周最大工时", record["每周最大工时"])
						continue
					}
					maxHours = int32(hours)
				}

				employee = &domain.Employee{
					Name:            record["姓名"],
					Email:           email,
					SeniorityLevel:  level,
					MaxHoursPerWeek: maxHours,
				}

				if err := r.CreateEmployee(employee); err != nil {
					slog.Error("插入员工失败", "error", err)
					continue
				}
			default:
				slog.Error("获取员工失败", "error", err)
				continue
			}
		}

		// 按日期聚合每个班次列中填写的天数
		slotsByDay := make(map[int][]domain.ShiftType)
		for _, shiftHeader := range shiftHeaderArray {
			for _, day := range strings.Split(record[shiftHeader], ", ") {
				if day == "" {
					continue
				}

				dayInt, err := strconv.Atoi(day)
				if err != nil || dayInt < 1 || dayInt > 7 {
					slog.Error("转换天数失败", "day", day)
					continue
				}

				slotsByDay[dayInt] = append(slotsByDay[dayInt], shiftHeaderMap[shiftHeader])
			}
		}

		availability := &domain.Availability{
			EmployeeID:    employee.ID,
			WeekStartDate: weekStartDate,
		}
		for day := 1; day <= 7; day++ {
			if len(slotsByDay[day]) == 0 {
				continue
			}
			availability.AvailableSlots = append(availability.AvailableSlots, domain.AvailabilitySlot{
				Date:  weekStartDate.AddDate(0, 0, day-1),
				Slots: slotsByDay[day],
			})
		}

		if len(availability.AvailableSlots) == 0 {
			continue
		}

		if err := r.UpsertAvailability(availability); err != nil {
			slog.Error("插入空闲时间失败", "error", err)
			continue
		}
	}

	slog.Info("插入数据完成")
}
