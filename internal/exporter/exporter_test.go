package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.DataDir = t.TempDir()
	cfg.Storage.OutputDir = t.TempDir()
	cfg.Storage.PrettyJSON = true
	cfg.Export.ExcelAuthor = "Schedule DND"
	cfg.Export.IncludeMetadata = true
	cfg.Document.Source = "УМВД России по Всеволожскому району ЛО"
	return cfg
}

// octoberSchedule is the common fixture: one unit, one October 2025 shift.
func octoberSchedule(t *testing.T) *domain.Schedule {
	t.Helper()
	metadata, err := domain.NewScheduleMetadata(domain.October, 2025)
	if err != nil {
		t.Fatalf("new metadata: %v", err)
	}
	metadata.Source = "УМВД России по Всеволожскому району ЛО"
	schedule := domain.NewSchedule(metadata)

	shift, err := domain.NewShift("07.10.2025", domain.DutyTypePPSP, "", "")
	if err != nil {
		t.Fatalf("new shift: %v", err)
	}
	unit, err := domain.NewUnit(1, domain.Units[0], []domain.Shift{shift})
	if err != nil {
		t.Fatalf("new unit: %v", err)
	}
	if err := schedule.AddUnit(unit); err != nil {
		t.Fatalf("add unit: %v", err)
	}
	return schedule
}

func TestFactoryCreatesAllFormats(t *testing.T) {
	factory := NewFactory(newTestConfig(t))

	for _, format := range factory.SupportedFormats() {
		exp, err := factory.Create(format)
		if err != nil {
			t.Errorf("create %s: %v", format, err)
			continue
		}
		if exp.Extension() != format.Extension() {
			t.Errorf("%s: extension mismatch: %s vs %s", format, exp.Extension(), format.Extension())
		}
	}
}

func TestFactoryRejectsUnknownFormat(t *testing.T) {
	factory := NewFactory(newTestConfig(t))

	_, err := factory.Create(domain.ExportFormat("pdf"))
	var exportErr *domain.ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("expected export error, got %v", err)
	}
	if exportErr.Kind != domain.ErrKindFormatUnsupported {
		t.Errorf("expected format_unsupported, got %s", exportErr.Kind)
	}
	if !strings.Contains(exportErr.Reason, "markdown") {
		t.Errorf("error must list supported formats, got %q", exportErr.Reason)
	}
}

func TestDefaultFilenameUsesNumericMonth(t *testing.T) {
	schedule := octoberSchedule(t)
	if got := DefaultFilename(schedule, "csv"); got != "schedule_2025_10.csv" {
		t.Errorf("expected schedule_2025_10.csv, got %s", got)
	}
}

func TestEmptyScheduleWritesNothing(t *testing.T) {
	cfg := newTestConfig(t)
	factory := NewFactory(cfg)

	metadata, err := domain.NewScheduleMetadata(domain.October, 2025)
	if err != nil {
		t.Fatalf("new metadata: %v", err)
	}
	empty := domain.NewSchedule(metadata)

	for _, format := range factory.SupportedFormats() {
		exp, err := factory.Create(format)
		if err != nil {
			t.Fatalf("create %s: %v", format, err)
		}
		if _, err := exp.Export(empty, ""); !domain.IsValidationError(err, domain.ErrKindEmptySchedule) {
			t.Errorf("%s: expected empty schedule error, got %v", format, err)
		}
	}

	entries, err := os.ReadDir(cfg.Storage.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("no files must be written for an empty schedule, found %d", len(entries))
	}
}

func TestExportAllFormatsProduceFiles(t *testing.T) {
	cfg := newTestConfig(t)
	factory := NewFactory(cfg)
	schedule := octoberSchedule(t)

	for _, format := range factory.SupportedFormats() {
		exp, err := factory.Create(format)
		if err != nil {
			t.Fatalf("create %s: %v", format, err)
		}
		path, err := exp.Export(schedule, "")
		if err != nil {
			t.Fatalf("export %s: %v", format, err)
		}
		if filepath.Base(path) != "schedule_2025_10."+format.Extension() {
			t.Errorf("%s: unexpected filename %s", format, filepath.Base(path))
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s: exported file is empty", format)
		}
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	cfg := newTestConfig(t)
	schedule := octoberSchedule(t)

	exp := &JSONExporter{cfg: cfg}
	path, err := exp.Export(schedule, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	loaded := &domain.Schedule{}
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal exported document: %v", err)
	}
	if err := loaded.Validate(); err != nil {
		t.Fatalf("exported document does not validate: %v", err)
	}
	if loaded.TotalShifts() != schedule.TotalShifts() {
		t.Errorf("shift count lost in export: %d vs %d", loaded.TotalShifts(), schedule.TotalShifts())
	}
}

func TestJSONExportIsIdempotent(t *testing.T) {
	cfg := newTestConfig(t)
	schedule := octoberSchedule(t)
	exp := &JSONExporter{cfg: cfg}

	path, err := exp.Export(schedule, "")
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first export: %v", err)
	}

	if _, err := exp.Export(schedule, ""); err != nil {
		t.Fatalf("second export: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second export: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated export must produce identical bytes")
	}
}

func TestCSVExportContent(t *testing.T) {
	cfg := newTestConfig(t)
	schedule := octoberSchedule(t)

	exp := &CSVExporter{cfg: cfg}
	path, err := exp.Export(schedule, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header and one row, got %d records", len(records))
	}
	if records[0][0] != "Подразделение" || records[0][2] != "День недели" {
		t.Errorf("unexpected header: %v", records[0])
	}
	row := records[1]
	want := []string{domain.Units[0], "07.10.2025", "Вторник", "ППСП", domain.DefaultShiftTime, domain.DefaultShiftNote}
	for i, value := range want {
		if row[i] != value {
			t.Errorf("column %d: expected %q, got %q", i, value, row[i])
		}
	}
}

func TestMarkdownExportContent(t *testing.T) {
	cfg := newTestConfig(t)
	schedule := octoberSchedule(t)

	exp := &MarkdownExporter{cfg: cfg}
	path, err := exp.Export(schedule, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	content := string(data)

	for _, fragment := range []string{
		"# График дежурств ДНД - Октябрь 2025",
		"| " + domain.Units[0] + " |",
		"07.10.2025",
		"Вторник",
		domain.AppName + " v" + domain.AppVersion,
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("markdown output missing %q", fragment)
		}
	}
}

func TestHTMLExportContent(t *testing.T) {
	cfg := newTestConfig(t)
	schedule := octoberSchedule(t)

	exp := &HTMLExporter{cfg: cfg}
	path, err := exp.Export(schedule, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	content := string(data)

	for _, fragment := range []string{
		"<title>График дежурств ДНД - Октябрь 2025</title>",
		"badge-ppsp",
		"07.10.2025",
		"Источник:",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("html output missing %q", fragment)
		}
	}
}

func TestExportToExplicitPath(t *testing.T) {
	cfg := newTestConfig(t)
	schedule := octoberSchedule(t)

	target := filepath.Join(t.TempDir(), "nested", "custom.csv")
	exp := &CSVExporter{cfg: cfg}
	path, err := exp.Export(schedule, target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if path != target {
		t.Errorf("expected %s, got %s", target, path)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
