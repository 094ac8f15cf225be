// Package service связывает доменную модель, хранилище и экспорт: здесь
// собираются агрегаты из входных данных и принимаются решения уровня
// приложения.
package service

import (
	"fmt"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// ShiftInput is one shift as supplied by the caller. Empty Time and Notes
// fall back to the document defaults.
type ShiftInput struct {
	Date     string `json:"date" validate:"required"`
	DutyType string `json:"dutyType" validate:"required"`
	Time     string `json:"time"`
	Notes    string `json:"notes"`
}

type UnitInput struct {
	ID       int          `json:"id" validate:"required,min=1"`
	UnitName string       `json:"unitName" validate:"required"`
	Shifts   []ShiftInput `json:"shifts" validate:"dive"`
}

type CreateScheduleRequest struct {
	Month int         `json:"month" validate:"required,min=1,max=12"`
	Year  int         `json:"year" validate:"required,min=2000"`
	Units []UnitInput `json:"units" validate:"dive"`
}

// FieldError is one validation failure in a dry-run check, addressed to the
// offending field rather than to the whole request.
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of a dry-run check: nothing is persisted,
// all discovered problems are reported at once.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Errors   []FieldError `json:"errors"`
	Warnings []string     `json:"warnings"`
}

type UnitStatistics struct {
	UnitID           int            `json:"unitId"`
	UnitName         string         `json:"unitName"`
	TotalShifts      int            `json:"totalShifts"`
	ShiftsByType     map[string]int `json:"shiftsByType"`
	AvgShiftsPerWeek float64        `json:"avgShiftsPerWeek"`
}

type Statistics struct {
	Period       string           `json:"period"`
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	TotalUnits   int              `json:"totalUnits"`
	ActiveUnits  int              `json:"activeUnits"`
	TotalShifts  int              `json:"totalShifts"`
	ShiftsByType map[string]int   `json:"shiftsByType"`
	Units        []UnitStatistics `json:"units"`
}

// ExportResult is the per-format outcome of an export run.
type ExportResult struct {
	Format     string `json:"format"`
	Success    bool   `json:"success"`
	OutputPath string `json:"outputPath,omitempty"`
	FileSize   int64  `json:"fileSize,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchExportResult aggregates an export-to-all-formats run. A failed format
// never aborts the others.
type BatchExportResult struct {
	Results   []ExportResult `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Summary   string         `json:"summary"`
}

func newBatchExportResult(results []ExportResult) BatchExportResult {
	batch := BatchExportResult{Results: results}
	for _, result := range results {
		if result.Success {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	batch.Summary = fmt.Sprintf("экспортировано %d из %d форматов", batch.Succeeded, len(results))
	return batch
}

func fieldErrorFrom(err *domain.ValidationError) FieldError {
	return FieldError{
		Field:   err.Field,
		Value:   err.Value,
		Kind:    string(err.Kind),
		Message: err.Message,
	}
}
