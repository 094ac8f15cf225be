package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// ExcelExporter writes an xlsx workbook with a styled title, header row and
// one data row per shift. Column layout matches the CSV exporter.
type ExcelExporter struct {
	cfg *config.Config
}

const excelSheet = "График"

func (e *ExcelExporter) Export(schedule *domain.Schedule, outputPath string) (string, error) {
	if err := checkExportable(schedule); err != nil {
		return "", err
	}
	outputPath, err := resolvePath(e.cfg, schedule, e.Extension(), outputPath)
	if err != nil {
		return "", err
	}

	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", excelSheet)

	if err := e.writeSheet(file, schedule); err != nil {
		return "", writeFailed(domain.FormatExcel, err)
	}

	file.SetDocProps(&excelize.DocProperties{
		Creator: e.cfg.Export.ExcelAuthor,
		Title:   "График дежурств ДНД - " + schedule.Metadata.PeriodString(),
	})

	if err := file.SaveAs(outputPath); err != nil {
		return "", writeFailed(domain.FormatExcel, err)
	}
	return outputPath, nil
}

func (e *ExcelExporter) writeSheet(file *excelize.File, schedule *domain.Schedule) error {
	titleStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	dataStyle, err := file.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}

	// Заголовок документа на всю ширину таблицы.
	title := "График дежурств ДНД - " + schedule.Metadata.PeriodString()
	if err := file.MergeCell(excelSheet, "A1", "F1"); err != nil {
		return err
	}
	file.SetCellValue(excelSheet, "A1", title)
	file.SetCellStyle(excelSheet, "A1", "F1", titleStyle)
	file.SetRowHeight(excelSheet, 1, 25)

	headers := []string{"Подразделение", "Дата", "День недели", "Тип дежурства", "Время", "Примечания"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		file.SetCellValue(excelSheet, cell, header)
	}
	file.SetCellStyle(excelSheet, "A3", "F3", headerStyle)

	row := 4
	for _, unit := range schedule.Units {
		for _, shift := range unit.SortedShifts() {
			values := []interface{}{
				unit.UnitName,
				shift.Date,
				shift.Weekday(),
				shift.DutyType.String(),
				shift.Time,
				shift.Notes,
			}
			for i, value := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return err
				}
				file.SetCellValue(excelSheet, cell, value)
			}
			file.SetCellStyle(excelSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
			row++
		}
	}

	widths := []float64{35, 12, 15, 15, 15, 50}
	for i, width := range widths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		file.SetColWidth(excelSheet, column, column, width)
	}

	if e.cfg.Export.IncludeMetadata {
		meta := schedule.Metadata
		row += 2
		lines := []string{
			"Создано: " + meta.CreatedAt.Format("02.01.2006 15:04"),
		}
		if meta.Source != "" {
			lines = append(lines, "Источник: "+meta.Source)
		}
		if meta.Signatory != "" {
			lines = append(lines, "Подписант: "+meta.Signatory)
		}
		if meta.Note != "" {
			lines = append(lines, "Примечание: "+meta.Note)
		}
		for _, line := range lines {
			file.SetCellValue(excelSheet, fmt.Sprintf("A%d", row), line)
			row++
		}
	}

	return nil
}

func (e *ExcelExporter) Extension() string {
	return "xlsx"
}

func (e *ExcelExporter) FormatName() string {
	return "Excel"
}
