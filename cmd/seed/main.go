package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/bhatbazik/Automated-employee-shift/internal/config"
	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/bhatbazik/Automated-employee-shift/internal/repository"
	"github.com/bhatbazik/Automated-employee-shift/internal/seed"
	"github.com/bhatbazik/Automated-employee-shift/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var weekStart string
	var maxEmployees int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 为所有员工插入随机空闲时间, 3: 从 CSV 花名册导入真实数据, 4: 初始化排班设置)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&weekStart, "week-start", "", "空闲时间对应的周起始日 (YYYY-MM-DD)")
	flag.IntVar(&maxEmployees, "max-employees", int(domain.DefaultMaxEmployeesPerShift), "每个班次的最大员工数")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				employee := utils.GenerateRandomEmployee(cfg.Email.UserDomain)
				if err := repo.CreateEmployee(employee); err != nil {
					slog.Error("无法插入员工", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 2:
		weekStartDate, err := parseWeekStart(weekStart)
		if err != nil {
			slog.Error("周起始日非法", slog.String("error", err.Error()))
			return
		}

		employees, err := repo.GetAllEmployees()
		if err != nil {
			slog.Error("无法获取所有员工", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, employee := range employees {
			availability := utils.GenerateRandomWeekAvailability(employee.ID, weekStartDate)
			if len(availability.AvailableSlots) == 0 {
				continue
			}

			if err := repo.UpsertAvailability(availability); err != nil {
				slog.Error("无法插入空闲时间", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入空闲时间成功", slog.Int("count", cnt))
	case 3:
		weekStartDate, err := parseWeekStart(weekStart)
		if err != nil {
			slog.Error("周起始日非法", slog.String("error", err.Error()))
			return
		}

		seed.SeedRosterData(repo, weekStartDate)
	case 4:
		if maxEmployees < 1 {
			slog.Error("每个班次的最大员工数不能小于 1")
			return
		}

		settings, err := repo.GetShiftSettings()
		if err != nil {
			slog.Error("无法获取排班设置", slog.String("error", err.Error()))
			return
		}
		settings.MaxEmployees = int32(maxEmployees)

		if err := repo.UpsertShiftSettings(settings); err != nil {
			slog.Error("无法更新排班设置", slog.String("error", err.Error()))
			return
		}

		slog.Info("初始化排班设置成功", slog.Int("max_employees", maxEmployees))
	default:
		slog.Error("指定的操作非法")
	}
}

func parseWeekStart(weekStart string) (time.Time, error) {
	if weekStart == "" {
		// 默认使用下一个周一
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		offset := (8 - int(today.Weekday())) % 7
		if offset == 0 {
			offset = 7
		}
		return today.AddDate(0, 0, offset), nil
	}

	return time.Parse(time.DateOnly, weekStart)
}
