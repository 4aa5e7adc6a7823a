package handler

import (
	"net/http"
)

func (h *Handler) GetShiftSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetShiftSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班设置成功", settings)
}

func (h *Handler) UpdateShiftSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MaxEmployees int32 `json:"maxEmployees" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings, err := h.repository.GetShiftSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	settings.MaxEmployees = req.MaxEmployees

	if err := h.repository.UpsertShiftSettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新排班设置成功", settings)
}
