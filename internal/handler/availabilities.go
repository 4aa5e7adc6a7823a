package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
	"github.com/bhatbazik/Automated-employee-shift/internal/utils"
)

func (h *Handler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStartDate string `json:"weekStartDate" validate:"required"`
		Slots         []struct {
			Date       string   `json:"date" validate:"required"`
			ShiftTypes []string `json:"shiftTypes" validate:"required,min=1,dive,oneof=morning afternoon night"`
		} `json:"slots" validate:"required,dive"`
		MaxWorkingHours *int32 `json:"maxWorkingHours" validate:"omitempty,min=8,max=60"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStartDate, err := time.Parse(time.DateOnly, req.WeekStartDate)
	if err != nil {
		h.badRequest(w, r, errors.New("weekStartDate 格式无效，应该为 YYYY-MM-DD"))
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	availability := &domain.Availability{
		EmployeeID:      employee.ID,
		WeekStartDate:   weekStartDate,
		MaxWorkingHours: req.MaxWorkingHours,
	}
	for _, slot := range req.Slots {
		date, err := time.Parse(time.DateOnly, slot.Date)
		if err != nil {
			h.badRequest(w, r, errors.New("slots 中的 date 格式无效，应该为 YYYY-MM-DD"))
			return
		}
		types := make([]domain.ShiftType, 0, len(slot.ShiftTypes))
		for _, t := range slot.ShiftTypes {
			types = append(types, domain.ShiftType(t))
		}
		availability.AvailableSlots = append(availability.AvailableSlots, domain.AvailabilitySlot{
			Date:  date,
			Slots: types,
		})
	}

	if err := utils.ValidateAvailabilityWeek(availability); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpsertAvailability(availability); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "availabilities_employee_id_fkey":
				h.badRequest(w, r, errors.New("员工不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "提交可用时间成功", availability)
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	weekStartDateParam := r.URL.Query().Get("weekStartDate")
	if weekStartDateParam == "" {
		h.badRequest(w, r, errors.New("weekStartDate 不能为空"))
		return
	}

	weekStartDate, err := time.Parse(time.DateOnly, weekStartDateParam)
	if err != nil {
		h.badRequest(w, r, errors.New("weekStartDate 格式无效，应该为 YYYY-MM-DD"))
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	availability, err := h.repository.GetAvailabilityByEmployeeAndWeek(employee.ID, weekStartDate)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该员工本周尚未提交可用时间")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取可用时间成功", availability)
}
