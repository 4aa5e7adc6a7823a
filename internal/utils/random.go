package utils

import (
	"math/rand"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailLocalPartFromChineseName 用姓名的拼音加随机数字生成邮箱的本地部分
func GenerateEmailLocalPartFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, py := range pinyinArray {
		localPart += py
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart
}

var seniorityLevels = []domain.SeniorityLevel{
	domain.SeniorityJunior,
	domain.SeniorityMid,
	domain.SenioritySenior,
}

func GenerateRandomSeniorityLevel() domain.SeniorityLevel {
	return seniorityLevels[rand.Intn(len(seniorityLevels))]
}

func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	fullName := GenerateRandomChineseName()

	return &domain.Employee{
		Name:            fullName,
		Email:           GenerateEmailLocalPartFromChineseName(fullName) + "@" + emailDomainName,
		SeniorityLevel:  GenerateRandomSeniorityLevel(),
		MaxHoursPerWeek: int32(rand.Intn(6)*8 + 20), // 20~60 之间
	}
}

// GenerateRandomShiftTypeSubset 用 Fisher-Yates 洗牌算法生成一个随机的班次类型子集
func GenerateRandomShiftTypeSubset() []domain.ShiftType {
	types := append([]domain.ShiftType{}, domain.AllShiftTypes...)

	for i := len(types) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		types[i], types[j] = types[j], types[i]
	}

	n := rand.Intn(len(types)) + 1

	return types[:n]
}

// GenerateRandomWeekAvailability 为员工随机生成一周的空闲时间提交
func GenerateRandomWeekAvailability(employeeID int64, weekStartDate time.Time) *domain.Availability {
	availability := &domain.Availability{
		EmployeeID:    employeeID,
		WeekStartDate: weekStartDate,
	}

	for day := 0; day < 7; day++ {
		// 每天都有一定概率完全没空
		if rand.Intn(4) == 0 {
			continue
		}

		availability.AvailableSlots = append(availability.AvailableSlots, domain.AvailabilitySlot{
			Date:  weekStartDate.AddDate(0, 0, day),
			Slots: GenerateRandomShiftTypeSubset(),
		})
	}

	// 少数员工会对本周的工时上限做覆盖
	if rand.Intn(5) == 0 {
		override := int32(rand.Intn(4)*8 + 16) // 16~40
		availability.MaxWorkingHours = &override
	}

	return availability
}
