package exporter

import (
	"html/template"
	"os"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// HTMLExporter renders a self-contained page: embedded styling, statistics
// cards and the same tabular data as the other formats.
type HTMLExporter struct {
	cfg *config.Config
}

type htmlRow struct {
	UnitName string
	Date     string
	Weekday  string
	DutyType string
	Badge    string
	Time     string
	Notes    string
}

type htmlStat struct {
	Number int
	Label  string
}

type htmlPage struct {
	Title           string
	Period          string
	Stats           []htmlStat
	Rows            []htmlRow
	IncludeMetadata bool
	CreatedAt       string
	Source          string
	Signatory       string
	Note            string
	AppName         string
	AppVersion      string
}

var dutyBadges = map[domain.DutyType]string{
	domain.DutyTypePDN:  "badge-pdn",
	domain.DutyTypePPSP: "badge-ppsp",
	domain.DutyTypeUUP:  "badge-uup",
}

func (e *HTMLExporter) Export(schedule *domain.Schedule, outputPath string) (string, error) {
	if err := checkExportable(schedule); err != nil {
		return "", err
	}
	outputPath, err := resolvePath(e.cfg, schedule, e.Extension(), outputPath)
	if err != nil {
		return "", err
	}

	page := e.buildPage(schedule)

	file, err := os.Create(outputPath)
	if err != nil {
		return "", writeFailed(domain.FormatHTML, err)
	}
	defer file.Close()

	if err := htmlTemplate.Execute(file, page); err != nil {
		return "", writeFailed(domain.FormatHTML, err)
	}
	return outputPath, nil
}

func (e *HTMLExporter) buildPage(schedule *domain.Schedule) htmlPage {
	meta := schedule.Metadata

	stats := []htmlStat{
		{Number: len(schedule.Units), Label: "Подразделений"},
		{Number: schedule.TotalShifts(), Label: "Всего дежурств"},
	}
	counts := schedule.ShiftsByType()
	for _, dutyType := range domain.DutyTypes() {
		if counts[dutyType] > 0 {
			stats = append(stats, htmlStat{Number: counts[dutyType], Label: dutyType.String()})
		}
	}

	rows := make([]htmlRow, 0, schedule.TotalShifts())
	for _, unit := range schedule.Units {
		for _, shift := range unit.SortedShifts() {
			rows = append(rows, htmlRow{
				UnitName: unit.UnitName,
				Date:     shift.Date,
				Weekday:  shift.Weekday(),
				DutyType: shift.DutyType.String(),
				Badge:    dutyBadges[shift.DutyType],
				Time:     shift.Time,
				Notes:    shift.Notes,
			})
		}
	}

	return htmlPage{
		Title:           "График дежурств ДНД - " + meta.PeriodString(),
		Period:          meta.PeriodString(),
		Stats:           stats,
		Rows:            rows,
		IncludeMetadata: e.cfg.Export.IncludeMetadata,
		CreatedAt:       meta.CreatedAt.Format("02.01.2006 15:04"),
		Source:          meta.Source,
		Signatory:       meta.Signatory,
		Note:            meta.Note,
		AppName:         domain.AppName,
		AppVersion:      domain.AppVersion,
	}
}

func (e *HTMLExporter) Extension() string {
	return "html"
}

func (e *HTMLExporter) FormatName() string {
	return "HTML"
}

var htmlTemplate = template.Must(template.New("schedule").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 15px;
            box-shadow: 0 10px 40px rgba(0,0,0,0.2);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 { font-size: 2em; margin-bottom: 10px; }
        .header .subtitle { font-size: 1.1em; opacity: 0.9; }
        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            padding: 30px;
            background: #f8f9fa;
        }
        .stat-card {
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            text-align: center;
        }
        .stat-card .number {
            font-size: 2em;
            font-weight: bold;
            color: #667eea;
            margin-bottom: 5px;
        }
        .stat-card .label { color: #6c757d; font-size: 0.9em; }
        .content { padding: 30px; }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 20px;
            background: white;
        }
        thead { background: #667eea; color: white; }
        th, td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid #e9ecef;
        }
        th {
            font-weight: 600;
            text-transform: uppercase;
            font-size: 0.85em;
            letter-spacing: 0.5px;
        }
        tbody tr:hover { background: #f8f9fa; }
        .badge {
            display: inline-block;
            padding: 4px 12px;
            border-radius: 20px;
            font-size: 0.85em;
            font-weight: 600;
        }
        .badge-pdn { background: #e3f2fd; color: #1976d2; }
        .badge-ppsp { background: #f3e5f5; color: #7b1fa2; }
        .badge-uup { background: #fff3e0; color: #f57c00; }
        .footer {
            background: #f8f9fa;
            padding: 20px;
            text-align: center;
            color: #6c757d;
            font-size: 0.9em;
            border-top: 1px solid #e9ecef;
        }
        .metadata {
            background: #f8f9fa;
            padding: 20px;
            margin-top: 30px;
            border-radius: 10px;
            border-left: 4px solid #667eea;
        }
        .metadata h3 { margin-bottom: 15px; color: #495057; }
        .metadata p { margin: 8px 0; color: #6c757d; }
        @media print {
            body { background: white; padding: 0; }
            .container { box-shadow: none; }
            .header, thead {
                background: #667eea !important;
                -webkit-print-color-adjust: exact;
                print-color-adjust: exact;
            }
            .stats { break-inside: avoid; }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>График дежурств ДНД</h1>
            <div class="subtitle">{{.Period}}</div>
        </div>

        <div class="stats">
{{- range .Stats}}
            <div class="stat-card">
                <div class="number">{{.Number}}</div>
                <div class="label">{{.Label}}</div>
            </div>
{{- end}}
        </div>

        <div class="content">
            <table>
                <thead>
                    <tr>
                        <th>Подразделение</th>
                        <th>Дата</th>
                        <th>День недели</th>
                        <th>Тип дежурства</th>
                        <th>Время</th>
                        <th>Примечания</th>
                    </tr>
                </thead>
                <tbody>
{{- range .Rows}}
                    <tr>
                        <td><strong>{{.UnitName}}</strong></td>
                        <td>{{.Date}}</td>
                        <td>{{.Weekday}}</td>
                        <td><span class="badge {{.Badge}}">{{.DutyType}}</span></td>
                        <td>{{.Time}}</td>
                        <td>{{.Notes}}</td>
                    </tr>
{{- end}}
                </tbody>
            </table>
{{- if .IncludeMetadata}}
            <div class="metadata">
                <h3>Информация о документе</h3>
                <p><strong>Создано:</strong> {{.CreatedAt}}</p>
{{- if .Source}}
                <p><strong>Источник:</strong> {{.Source}}</p>
{{- end}}
{{- if .Signatory}}
                <p><strong>Подписант:</strong> {{.Signatory}}</p>
{{- end}}
{{- if .Note}}
                <p><strong>Примечание:</strong> {{.Note}}</p>
{{- end}}
            </div>
{{- end}}
        </div>

        <div class="footer">
            Документ создан автоматически системой {{.AppName}} v{{.AppVersion}}
        </div>
    </div>
</body>
</html>
`))
