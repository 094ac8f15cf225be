package exporter

import (
	"encoding/csv"
	"os"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

var csvHeader = []string{"Подразделение", "Дата", "День недели", "Тип дежурства", "Время", "Примечания"}

// CSVExporter writes one row per shift; encoding/csv quotes values containing
// delimiters or newlines.
type CSVExporter struct {
	cfg *config.Config
}

func (e *CSVExporter) Export(schedule *domain.Schedule, outputPath string) (string, error) {
	if err := checkExportable(schedule); err != nil {
		return "", err
	}
	outputPath, err := resolvePath(e.cfg, schedule, e.Extension(), outputPath)
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", writeFailed(domain.FormatCSV, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return "", writeFailed(domain.FormatCSV, err)
	}

	for _, unit := range schedule.Units {
		for _, shift := range unit.SortedShifts() {
			row := []string{
				unit.UnitName,
				shift.Date,
				shift.Weekday(),
				shift.DutyType.String(),
				shift.Time,
				shift.Notes,
			}
			if err := writer.Write(row); err != nil {
				return "", writeFailed(domain.FormatCSV, err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", writeFailed(domain.FormatCSV, err)
	}
	return outputPath, nil
}

func (e *CSVExporter) Extension() string {
	return "csv"
}

func (e *CSVExporter) FormatName() string {
	return "CSV"
}
