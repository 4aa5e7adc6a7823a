package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/bhatbazik/Automated-employee-shift/internal/scheduler"
)

const generationLockKey = "schedule:generation_lock"

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsInRange(startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", shifts)
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		h.badRequest(w, r, errors.New("startDate 格式无效，应该为 YYYY-MM-DD"))
		return
	}
	endDate, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		h.badRequest(w, r, errors.New("endDate 格式无效，应该为 YYYY-MM-DD"))
		return
	}
	if endDate.Before(startDate) {
		h.badRequest(w, r, errors.New("endDate 不能早于 startDate"))
		return
	}

	// 用 redis 锁保证同一时刻只有一次排班在运行，避免两次运行写入同一个 (日期, 班次类型)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	locked, err := h.redisClient.SetNX(ctx, generationLockKey, time.Now().Format(time.RFC3339), time.Duration(h.config.Schedule.GenerationLockTTL)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "已有排班任务正在运行，请稍后再试")
		return
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
		defer cancel()

		if err := h.redisClient.Del(ctx, generationLockKey).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}()

	// 班次容量在运行开始时解析一次，运行过程中修改设置不影响本次结果
	settings, err := h.repository.GetShiftSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 周起始日在范围开始前最多 6 天的提交也会覆盖到范围内的日期
	availabilities, err := h.repository.GetAvailabilitiesInRange(startDate.AddDate(0, 0, -6), endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	s, err := scheduler.New(&scheduler.Parameters{
		StartDate:            startDate,
		EndDate:              endDate,
		MaxEmployeesPerShift: settings.MaxEmployees,
	}, employees, availabilities, nil)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := s.Schedule()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 已经排过的 (日期, 班次类型) 不再重复写入，数据库的唯一约束是最后一道防线
	existing, err := h.repository.GetShiftsInRange(startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	newShifts := scheduler.DropOccupiedCells(result.Shifts, existing)

	if err := h.repository.InsertScheduleRun(newShifts, result.Notifications); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	for _, notification := range result.Notifications {
		if err := h.publishStaffingAlert(notification); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	shifts, err := h.repository.GetShiftsInRange(startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排班成功", map[string]any{
		"shifts":        shifts,
		"notifications": result.Notifications,
	})
}

// publishStaffingAlert 将人手不足提醒发送到消息队列，由 mail 服务异步发给管理员
func (h *Handler) publishStaffingAlert(notification *domain.Notification) error {
	mailMessage := domain.MailMessage{
		Type: "staffing_alert",
		To:   h.config.Email.AdminAddress,
		Data: domain.StaffingAlertMailData{
			Message: notification.Message,
			Date:    notification.Date.Format(time.DateOnly),
		},
	}
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
