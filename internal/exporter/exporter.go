// Package exporter renders a validated schedule into the five supported
// external formats. Exporters are pure projections: they never mutate the
// schedule and never write anything when the preconditions fail.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

type Exporter interface {
	// Export writes the schedule to outputPath, or to the default path under
	// the configured output directory when outputPath is empty, and returns
	// the path written.
	Export(schedule *domain.Schedule, outputPath string) (string, error)
	Extension() string
	FormatName() string
}

type Factory struct {
	cfg *config.Config
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{cfg: cfg}
}

func (f *Factory) Create(format domain.ExportFormat) (Exporter, error) {
	switch format {
	case domain.FormatJSON:
		return &JSONExporter{cfg: f.cfg}, nil
	case domain.FormatExcel:
		return &ExcelExporter{cfg: f.cfg}, nil
	case domain.FormatCSV:
		return &CSVExporter{cfg: f.cfg}, nil
	case domain.FormatMarkdown:
		return &MarkdownExporter{cfg: f.cfg}, nil
	case domain.FormatHTML:
		return &HTMLExporter{cfg: f.cfg}, nil
	default:
		supported := make([]string, 0, len(domain.ExportFormats()))
		for _, known := range domain.ExportFormats() {
			supported = append(supported, string(known))
		}
		return nil, &domain.ExportError{
			Kind:   domain.ErrKindFormatUnsupported,
			Format: string(format),
			Reason: fmt.Sprintf("supported formats: %s", strings.Join(supported, ", ")),
		}
	}
}

func (f *Factory) SupportedFormats() []domain.ExportFormat {
	return domain.ExportFormats()
}

func (f *Factory) IsSupported(format domain.ExportFormat) bool {
	return format.IsValid()
}

// DefaultFilename derives the output name from the numeric month form, the
// same way the repository names its documents.
func DefaultFilename(schedule *domain.Schedule, extension string) string {
	return fmt.Sprintf("schedule_%d_%02d.%s",
		schedule.Metadata.Year, schedule.Metadata.Month.Number(), extension)
}

// checkExportable rejects an empty schedule before anything is written.
func checkExportable(schedule *domain.Schedule) error {
	if schedule.IsEmpty() {
		return &domain.ValidationError{
			Kind:    domain.ErrKindEmptySchedule,
			Field:   "schedule",
			Message: "cannot export schedule with no units or no shifts",
		}
	}
	return nil
}

// resolvePath picks the output path and makes sure its directory exists.
func resolvePath(cfg *config.Config, schedule *domain.Schedule, extension, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(cfg.Storage.OutputDir, DefaultFilename(schedule, extension))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", &domain.FileSystemError{Op: "mkdir", Path: filepath.Dir(outputPath), Err: err}
	}
	return outputPath, nil
}

func writeFailed(format domain.ExportFormat, err error) error {
	return &domain.ExportError{
		Kind:   domain.ErrKindWriteFailed,
		Format: string(format),
		Err:    err,
	}
}
