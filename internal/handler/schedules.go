package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/service"
)

// domainError translates typed domain errors into the response envelope.
// Validation and not-found problems are the caller's fault, data and
// filesystem problems are ours.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		exportErr     *domain.ExportError
	)
	switch {
	case errors.As(err, &validationErr):
		h.errorResponse(w, r, validationErr.Error())
	case errors.As(err, &notFoundErr):
		h.errorResponse(w, r, "график не найден: "+notFoundErr.Identifier)
	case errors.As(err, &exportErr) && exportErr.Kind == domain.ErrKindFormatUnsupported:
		h.errorResponse(w, r, exportErr.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) periodFromContext(r *http.Request) (year, month int) {
	year = r.Context().Value(YearCtxKey).(int)
	month = r.Context().Value(MonthCtxKey).(int)
	return year, month
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.schedules.List()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "список графиков получен", summaries)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req service.CreateScheduleRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, path, err := h.schedules.Create(req)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "график сохранён", map[string]any{
		"schedule": schedule,
		"path":     path,
	})
}

func (h *Handler) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	var req service.CreateScheduleRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result := h.schedules.Validate(req)

	h.successResponse(w, r, "проверка выполнена", result)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	schedule, err := h.schedules.Get(year, month)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "график получен", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	if err := h.schedules.Delete(year, month); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "график удалён", nil)
}

func (h *Handler) GetScheduleStatistics(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	stats, err := h.schedules.Statistics(year, month)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "статистика получена", stats)
}

func (h *Handler) AddShift(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	var req struct {
		UnitName string `json:"unitName" validate:"required"`
		Date     string `json:"date" validate:"required"`
		DutyType string `json:"dutyType" validate:"required"`
		Time     string `json:"time"`
		Notes    string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.schedules.AddShift(year, month, req.UnitName, service.ShiftInput{
		Date:     req.Date,
		DutyType: req.DutyType,
		Time:     req.Time,
		Notes:    req.Notes,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "дежурство добавлено", schedule)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	var req struct {
		UnitName string `json:"unitName" validate:"required"`
		Date     string `json:"date" validate:"required"`
		NewDate  string `json:"newDate"`
		DutyType string `json:"dutyType" validate:"required"`
		Time     string `json:"time"`
		Notes    string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date := req.Date
	if req.NewDate != "" {
		date = req.NewDate
	}

	schedule, err := h.schedules.UpdateShift(year, month, req.UnitName, req.Date, service.ShiftInput{
		Date:     date,
		DutyType: req.DutyType,
		Time:     req.Time,
		Notes:    req.Notes,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "дежурство обновлено", schedule)
}

func (h *Handler) RemoveShift(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	var req struct {
		UnitName string `json:"unitName" validate:"required"`
		Date     string `json:"date" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.schedules.RemoveShift(year, month, req.UnitName, req.Date)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, fmt.Sprintf("дежурство %s удалено", req.Date), schedule)
}
