package exporter

import (
	"fmt"
	"os"
	"strings"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// MarkdownExporter renders a metadata preamble, a statistics summary and a
// combined shift table, with a footer identifying the generating version.
type MarkdownExporter struct {
	cfg *config.Config
}

func (e *MarkdownExporter) Export(schedule *domain.Schedule, outputPath string) (string, error) {
	if err := checkExportable(schedule); err != nil {
		return "", err
	}
	outputPath, err := resolvePath(e.cfg, schedule, e.Extension(), outputPath)
	if err != nil {
		return "", err
	}

	content := e.render(schedule)
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", writeFailed(domain.FormatMarkdown, err)
	}
	return outputPath, nil
}

func (e *MarkdownExporter) render(schedule *domain.Schedule) string {
	meta := schedule.Metadata
	b := &strings.Builder{}

	fmt.Fprintf(b, "# График дежурств ДНД - %s\n\n", meta.PeriodString())

	if e.cfg.Export.IncludeMetadata {
		b.WriteString("## Информация о документе\n\n")
		fmt.Fprintf(b, "- **Месяц:** %s\n", meta.Month.DisplayName())
		fmt.Fprintf(b, "- **Год:** %d\n", meta.Year)
		fmt.Fprintf(b, "- **Создано:** %s\n", meta.CreatedAt.Format("02.01.2006 15:04"))
		if meta.Source != "" {
			fmt.Fprintf(b, "- **Источник:** %s\n", meta.Source)
		}
		if meta.Signatory != "" {
			fmt.Fprintf(b, "- **Подписант:** %s\n", meta.Signatory)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Статистика\n\n")
	fmt.Fprintf(b, "- **Всего подразделений:** %d\n", len(schedule.Units))
	fmt.Fprintf(b, "- **Всего дежурств:** %d\n\n", schedule.TotalShifts())
	b.WriteString("**По типам:**\n")
	counts := schedule.ShiftsByType()
	for _, dutyType := range domain.DutyTypes() {
		if counts[dutyType] > 0 {
			fmt.Fprintf(b, "- %s: %d\n", dutyType, counts[dutyType])
		}
	}
	b.WriteString("\n")

	b.WriteString("## График дежурств\n\n")
	b.WriteString("| Подразделение | Дата | День недели | Тип дежурства | Время | Примечания |\n")
	b.WriteString("|---------------|------|-------------|---------------|-------|------------|\n")
	for _, unit := range schedule.Units {
		for _, shift := range unit.SortedShifts() {
			fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
				unit.UnitName, shift.Date, shift.Weekday(), shift.DutyType, shift.Time, shift.Notes)
		}
	}
	b.WriteString("\n")

	if meta.Note != "" {
		b.WriteString("## Примечание\n\n")
		b.WriteString(meta.Note)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(b, "*Документ создан автоматически системой %s v%s*\n", domain.AppName, domain.AppVersion)

	return b.String()
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}

func (e *MarkdownExporter) FormatName() string {
	return "Markdown"
}
