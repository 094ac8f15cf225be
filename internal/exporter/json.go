package exporter

import (
	"encoding/json"
	"os"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// JSONExporter re-serializes the schedule with full fidelity: the output is
// the same document shape the repository stores.
type JSONExporter struct {
	cfg *config.Config
}

func (e *JSONExporter) Export(schedule *domain.Schedule, outputPath string) (string, error) {
	if err := checkExportable(schedule); err != nil {
		return "", err
	}
	outputPath, err := resolvePath(e.cfg, schedule, e.Extension(), outputPath)
	if err != nil {
		return "", err
	}

	var data []byte
	if e.cfg.Storage.PrettyJSON {
		data, err = json.MarshalIndent(schedule, "", "  ")
	} else {
		data, err = json.Marshal(schedule)
	}
	if err != nil {
		return "", writeFailed(domain.FormatJSON, err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", writeFailed(domain.FormatJSON, err)
	}
	return outputPath, nil
}

func (e *JSONExporter) Extension() string {
	return "json"
}

func (e *JSONExporter) FormatName() string {
	return "JSON"
}
