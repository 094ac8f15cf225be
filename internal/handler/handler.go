package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/service"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	schedules  *service.ScheduleService
	exports    *service.ExportService
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, schedules *service.ScheduleService, exports *service.ExportService) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	ru := ru.New()
	uni := ut.New(ru, ru)
	trans, _ := uni.GetTranslator("ru")
	if err := ru_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		schedules:  schedules,
		exports:    exports,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/schedules", func(r chi.Router) {
		r.Get("/", h.ListSchedules)
		r.Post("/", h.CreateSchedule)
		r.Post("/validate", h.ValidateSchedule)

		r.Route("/{period}", func(r chi.Router) {
			r.Use(h.schedulePeriod)
			r.Get("/", h.GetSchedule)
			r.Delete("/", h.DeleteSchedule)
			r.Get("/statistics", h.GetScheduleStatistics)

			r.Route("/shifts", func(r chi.Router) {
				r.Post("/", h.AddShift)
				r.Put("/", h.UpdateShift)
				r.Delete("/", h.RemoveShift)
			})

			r.Post("/exports", h.ExportSchedule)
		})
	})

	h.Mux.Get("/export-formats", h.GetExportFormats)
}
