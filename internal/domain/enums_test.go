package domain

import (
	"encoding/json"
	"testing"
)

func TestParseDutyType(t *testing.T) {
	tests := []struct {
		input string
		want  DutyType
	}{
		{"ППСП", DutyTypePPSP},
		{"ппсп", DutyTypePPSP},
		{" ПДН ", DutyTypePDN},
		{"PPSP", DutyTypePPSP},
		{"pdn", DutyTypePDN},
		{"uup", DutyTypeUUP},
	}

	for _, tt := range tests {
		got, err := ParseDutyType(tt.input)
		if err != nil {
			t.Errorf("ParseDutyType(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDutyType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	if _, err := ParseDutyType("ГИБДД"); !IsValidationError(err, ErrKindDutyType) {
		t.Errorf("expected duty type error, got %v", err)
	}
}

func TestMonthNames(t *testing.T) {
	if October.Name() != "октябрь" {
		t.Errorf("expected октябрь, got %q", October.Name())
	}
	if October.DisplayName() != "Октябрь" {
		t.Errorf("expected Октябрь, got %q", October.DisplayName())
	}
	if October.Number() != 10 {
		t.Errorf("expected 10, got %d", October.Number())
	}
}

func TestParseMonthName(t *testing.T) {
	month, err := ParseMonthName(" Октябрь ")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if month != October {
		t.Errorf("expected October, got %v", month)
	}

	if _, err := ParseMonthName("octember"); !IsValidationError(err, ErrKindMonth) {
		t.Errorf("expected month error, got %v", err)
	}
}

func TestMonthFromNumberBounds(t *testing.T) {
	for _, number := range []int{0, 13, -1} {
		if _, err := MonthFromNumber(number); !IsValidationError(err, ErrKindMonth) {
			t.Errorf("expected month error for %d, got nil", number)
		}
	}
	month, err := MonthFromNumber(12)
	if err != nil {
		t.Fatalf("month from number: %v", err)
	}
	if month != December {
		t.Errorf("expected December, got %v", month)
	}
}

// В документах месяц хранится по-русски, а не числом.
func TestMonthJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(October)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"Октябрь"` {
		t.Errorf("expected display name in JSON, got %s", data)
	}

	var month Month
	if err := json.Unmarshal(data, &month); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if month != October {
		t.Errorf("round trip changed month: %v", month)
	}

	var invalid Month
	if err := json.Unmarshal([]byte(`"тринадцабрь"`), &invalid); err == nil {
		t.Error("expected error for unknown month name")
	}
}

func TestExportFormatExtensions(t *testing.T) {
	tests := []struct {
		format ExportFormat
		ext    string
	}{
		{FormatJSON, "json"},
		{FormatExcel, "xlsx"},
		{FormatCSV, "csv"},
		{FormatMarkdown, "md"},
		{FormatHTML, "html"},
	}
	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.ext {
			t.Errorf("%s: expected extension %q, got %q", tt.format, tt.ext, got)
		}
	}
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat(" Excel ")
	if err != nil {
		t.Fatalf("parse format: %v", err)
	}
	if format != FormatExcel {
		t.Errorf("expected excel, got %s", format)
	}

	if _, err := ParseExportFormat("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
