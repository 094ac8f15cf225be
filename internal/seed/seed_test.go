package seed

import (
	"testing"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

func TestGenerateRandomSchedule(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.AllowPastDates = true

	month, year := NextPeriod()
	schedule, err := GenerateRandomSchedule(cfg, month, year, 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(schedule.Units) != len(domain.Units) {
		t.Errorf("expected %d units, got %d", len(domain.Units), len(schedule.Units))
	}
	for _, unit := range schedule.Units {
		if unit.ShiftCount() > 4 {
			t.Errorf("%s: expected at most 4 shifts, got %d", unit.UnitName, unit.ShiftCount())
		}
	}
	if err := schedule.Validate(); err != nil {
		t.Errorf("generated schedule does not validate: %v", err)
	}
}

func TestNextPeriodIsAhead(t *testing.T) {
	month, year := NextPeriod()
	if month < 1 || month > 12 {
		t.Errorf("invalid month %d", month)
	}
	if year < 2025 {
		t.Errorf("suspicious year %d", year)
	}
}
