package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bhatbazik/Automated-employee-shift/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name" validate:"required"`
		Email           string `json:"email" validate:"required,email"`
		SeniorityLevel  string `json:"seniorityLevel" validate:"required,oneof=junior mid senior"`
		MaxHoursPerWeek *int32 `json:"maxHoursPerWeek" validate:"omitempty,min=20,max=60"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		Name:            req.Name,
		Email:           req.Email,
		SeniorityLevel:  domain.SeniorityLevel(req.SeniorityLevel),
		MaxHoursPerWeek: domain.DefaultMaxHoursPerWeek,
	}
	if req.MaxHoursPerWeek != nil {
		employee.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建员工成功", employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "获取员工信息成功", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            *string `json:"name"`
		Email           *string `json:"email" validate:"omitempty,email"`
		SeniorityLevel  *string `json:"seniorityLevel" validate:"omitempty,oneof=junior mid senior"`
		MaxHoursPerWeek *int32  `json:"maxHoursPerWeek" validate:"omitempty,min=20,max=60"`
		IsActive        *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.SeniorityLevel != nil {
		employee.SeniorityLevel = domain.SeniorityLevel(*req.SeniorityLevel)
	}
	if req.MaxHoursPerWeek != nil {
		employee.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新员工信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", employee)
}

func (h *Handler) UpdateEmployeeSeniority(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level string `json:"level" validate:"required,oneof=junior mid senior"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	employee.SeniorityLevel = domain.SeniorityLevel(req.Level)

	if err := h.repository.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新员工级别失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工级别成功", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) GetEmployeeShifts(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsForEmployee(employee.ID, startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工班次成功", shifts)
}

func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	startDateParam := r.URL.Query().Get("startDate")
	endDateParam := r.URL.Query().Get("endDate")

	if startDateParam == "" || endDateParam == "" {
		return time.Time{}, time.Time{}, errors.New("startDate 和 endDate 不能为空")
	}

	startDate, err := time.Parse(time.DateOnly, startDateParam)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("startDate 格式无效，应该为 YYYY-MM-DD")
	}
	endDate, err := time.Parse(time.DateOnly, endDateParam)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("endDate 格式无效，应该为 YYYY-MM-DD")
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errors.New("endDate 不能早于 startDate")
	}

	return startDate, endDate, nil
}
