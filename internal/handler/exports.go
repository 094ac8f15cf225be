package handler

import (
	"net/http"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/service"
)

// ExportSchedule renders a stored period. An empty format list means all
// supported formats; a failed format is reported in its result without
// aborting the rest.
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	year, month := h.periodFromContext(r)

	var req struct {
		Formats []string `json:"formats"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	formats := make([]domain.ExportFormat, 0, len(req.Formats))
	for _, raw := range req.Formats {
		format, err := domain.ParseExportFormat(raw)
		if err != nil {
			h.domainError(w, r, err)
			return
		}
		formats = append(formats, format)
	}

	var (
		batch service.BatchExportResult
		err   error
	)
	if len(formats) == 0 {
		batch, err = h.exports.ExportAllStored(year, month)
	} else {
		batch, err = h.exports.ExportFormatsStored(year, month, formats)
	}
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, batch.Summary, batch)
}

func (h *Handler) GetExportFormats(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "поддерживаемые форматы экспорта", h.exports.SupportedFormats())
}
