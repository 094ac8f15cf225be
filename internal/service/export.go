package service

import (
	"os"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/exporter"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/repository"
)

// ExportService renders stored documents into external formats.
type ExportService struct {
	cfg     *config.Config
	repo    *repository.Repository
	factory *exporter.Factory
}

func NewExportService(cfg *config.Config, repo *repository.Repository, factory *exporter.Factory) *ExportService {
	return &ExportService{cfg: cfg, repo: repo, factory: factory}
}

// Export renders one schedule into one format and reports the path and size
// of the written file.
func (s *ExportService) Export(schedule *domain.Schedule, format domain.ExportFormat, outputPath string) (ExportResult, error) {
	exp, err := s.factory.Create(format)
	if err != nil {
		return ExportResult{Format: string(format), Error: err.Error()}, err
	}
	path, err := exp.Export(schedule, outputPath)
	if err != nil {
		return ExportResult{Format: string(format), Error: err.Error()}, err
	}
	result := ExportResult{Format: string(format), Success: true, OutputPath: path}
	if info, err := os.Stat(path); err == nil {
		result.FileSize = info.Size()
	}
	return result, nil
}

// ExportStored loads the document for the period first, then exports it.
func (s *ExportService) ExportStored(year, month int, format domain.ExportFormat, outputPath string) (ExportResult, error) {
	schedule, err := s.repo.Load(year, month)
	if err != nil {
		return ExportResult{Format: string(format), Error: err.Error()}, err
	}
	return s.Export(schedule, format, outputPath)
}

// ExportAll renders the schedule in every supported format. An individual
// failure is recorded in its result and does not abort the remaining formats.
func (s *ExportService) ExportAll(schedule *domain.Schedule) BatchExportResult {
	results := make([]ExportResult, 0, len(s.factory.SupportedFormats()))
	for _, format := range s.factory.SupportedFormats() {
		result, _ := s.Export(schedule, format, "")
		results = append(results, result)
	}
	return newBatchExportResult(results)
}

// ExportAllStored is ExportAll for a stored period.
func (s *ExportService) ExportAllStored(year, month int) (BatchExportResult, error) {
	return s.ExportFormatsStored(year, month, s.factory.SupportedFormats())
}

// ExportFormatsStored loads the period once and exports it into the requested
// formats, recording per-format failures.
func (s *ExportService) ExportFormatsStored(year, month int, formats []domain.ExportFormat) (BatchExportResult, error) {
	schedule, err := s.repo.Load(year, month)
	if err != nil {
		return BatchExportResult{}, err
	}
	results := make([]ExportResult, 0, len(formats))
	for _, format := range formats {
		result, _ := s.Export(schedule, format, "")
		results = append(results, result)
	}
	return newBatchExportResult(results), nil
}

// SupportedFormats lists the formats with their file extensions.
func (s *ExportService) SupportedFormats() map[string]string {
	formats := map[string]string{}
	for _, format := range s.factory.SupportedFormats() {
		formats[string(format)] = format.Extension()
	}
	return formats
}
