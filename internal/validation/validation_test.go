package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

// futureDate returns the first day of a month guaranteed to be ahead of now.
func futureDate(t *testing.T) (date string, month, year int) {
	t.Helper()
	next := time.Now().AddDate(0, 2, 0)
	return fmt.Sprintf("01.%02d.%d", int(next.Month()), next.Year()), int(next.Month()), next.Year()
}

func TestValidateDay(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		month int
		year  int
		kind  domain.ErrorKind // пустой kind означает успех
	}{
		{"valid mid month", 15, 10, 2025, ""},
		{"last day of october", 31, 10, 2025, ""},
		{"day overflow", 32, 10, 2025, domain.ErrKindDateRange},
		{"zero day", 0, 10, 2025, domain.ErrKindDateRange},
		{"november has 30 days", 31, 11, 2025, domain.ErrKindDateRange},
		{"february non leap", 29, 2, 2025, domain.ErrKindDateRange},
		{"february leap", 29, 2, 2028, ""},
		{"month reported before day", 15, 13, 2025, domain.ErrKindMonth},
		{"zero month", 15, 0, 2025, domain.ErrKindMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDay(tt.day, tt.month, tt.year)
			if tt.kind == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !domain.IsValidationError(err, tt.kind) {
				t.Fatalf("expected %s error, got %v", tt.kind, err)
			}
		})
	}
}

func TestValidateYearBounds(t *testing.T) {
	currentYear := time.Now().Year()

	if err := ValidateYear(currentYear, false); err != nil {
		t.Errorf("current year rejected: %v", err)
	}
	if err := ValidateYear(currentYear+domain.MaxYearOffset, false); err != nil {
		t.Errorf("year at upper bound rejected: %v", err)
	}
	if err := ValidateYear(currentYear+domain.MaxYearOffset+1, false); !domain.IsValidationError(err, domain.ErrKindYear) {
		t.Errorf("expected year error beyond upper bound, got %v", err)
	}
	if err := ValidateYear(currentYear-1, false); !domain.IsValidationError(err, domain.ErrKindYear) {
		t.Errorf("expected year error for past year, got %v", err)
	}
	if err := ValidateYear(currentYear-1, true); err != nil {
		t.Errorf("recent past year rejected with allowPast: %v", err)
	}
	if err := ValidateYear(currentYear-domain.PastYearWindow-1, true); !domain.IsValidationError(err, domain.ErrKindYear) {
		t.Errorf("expected year error beyond past window, got %v", err)
	}
}

func TestValidateDateString(t *testing.T) {
	date, _, _ := futureDate(t)

	parsed, err := ValidateDateString(date, false)
	if err != nil {
		t.Fatalf("future date rejected: %v", err)
	}
	if parsed.Format(domain.DateLayout) != date {
		t.Errorf("parsed date %s does not match input %s", parsed.Format(domain.DateLayout), date)
	}

	if _, err := ValidateDateString("2025-10-07", false); !domain.IsValidationError(err, domain.ErrKindDateFormat) {
		t.Errorf("expected format error for ISO date, got %v", err)
	}
	if _, err := ValidateDateString("15.13.2025", true); !domain.IsValidationError(err, domain.ErrKindMonth) {
		t.Errorf("expected month error, got %v", err)
	}
	if _, err := ValidateDateString("32.10.2025", true); !domain.IsValidationError(err, domain.ErrKindDateRange) {
		t.Errorf("expected day error, got %v", err)
	}

	yesterday := time.Now().AddDate(0, 0, -1).Format(domain.DateLayout)
	if _, err := ValidateDateString(yesterday, false); !domain.IsValidationError(err, domain.ErrKindDateRange) {
		t.Errorf("expected past date error, got %v", err)
	}
	if _, err := ValidateDateString(yesterday, true); err != nil {
		t.Errorf("past date rejected with allowPast: %v", err)
	}
}

func TestValidateDateInMonth(t *testing.T) {
	if err := ValidateDateInMonth("07.10.2025", 10, 2025); err != nil {
		t.Errorf("matching date rejected: %v", err)
	}
	if err := ValidateDateInMonth("07.11.2025", 10, 2025); !domain.IsValidationError(err, domain.ErrKindShiftOutsidePeriod) {
		t.Errorf("expected outside period error for wrong month, got %v", err)
	}
	if err := ValidateDateInMonth("07.10.2026", 10, 2025); !domain.IsValidationError(err, domain.ErrKindShiftOutsidePeriod) {
		t.Errorf("expected outside period error for wrong year, got %v", err)
	}
}

func TestValidateTimeRange(t *testing.T) {
	start, end, err := ValidateTimeRange("18:00-22:00")
	if err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if !end.After(start) {
		t.Error("end must be after start")
	}

	invalid := []string{
		"18:00",
		"18:00–22:00", // длинное тире вместо дефиса
		"22:00-02:00",
		"18:00-18:00",
		"24:00-25:00",
	}
	for _, timeRange := range invalid {
		if _, _, err := ValidateTimeRange(timeRange); !domain.IsValidationError(err, domain.ErrKindTimeRange) {
			t.Errorf("expected time range error for %q, got %v", timeRange, err)
		}
	}
}

// Проверка запроса и конструктор смены обязаны одинаково судить об интервале
// времени: расхождение означало бы, что документ можно сохранить с интервалом,
// который запрос бы отклонил.
func TestValidateTimeRangeMatchesShiftConstruction(t *testing.T) {
	date, _, _ := futureDate(t)
	cases := []struct {
		timeRange string
		valid     bool
	}{
		{"18:00-22:00", true},
		{"10:00-14:00", true},
		{"22:00-02:00", false}, // через полночь
		{"18:00-18:00", false},
		{"18:00", false},
	}
	for _, tc := range cases {
		_, _, checkErr := ValidateTimeRange(tc.timeRange)
		_, buildErr := domain.NewShift(date, domain.DutyTypePPSP, tc.timeRange, "")
		if (checkErr == nil) != tc.valid {
			t.Errorf("ValidateTimeRange(%q): valid=%v, want %v", tc.timeRange, checkErr == nil, tc.valid)
		}
		if (buildErr == nil) != tc.valid {
			t.Errorf("NewShift with %q: valid=%v, want %v", tc.timeRange, buildErr == nil, tc.valid)
		}
	}
}

func TestValidateUnitName(t *testing.T) {
	for _, unitName := range domain.Units {
		if err := ValidateUnitName(unitName); err != nil {
			t.Errorf("registered unit %q rejected: %v", unitName, err)
		}
	}
	if err := ValidateUnitName("ДНД «Чужая»"); !domain.IsValidationError(err, domain.ErrKindUnitName) {
		t.Errorf("expected unit name error, got %v", err)
	}
}

func TestValidateSchedulePeriod(t *testing.T) {
	now := time.Now()

	if err := ValidateSchedulePeriod(int(now.Month()), now.Year()); err != nil {
		t.Errorf("current period rejected: %v", err)
	}

	_, month, year := futureDate(t)
	if err := ValidateSchedulePeriod(month, year); err != nil {
		t.Errorf("future period rejected: %v", err)
	}

	past := now.AddDate(0, -1, 0)
	err := ValidateSchedulePeriod(int(past.Month()), past.Year())
	if !domain.IsValidationError(err, domain.ErrKindPeriod, domain.ErrKindYear) {
		t.Errorf("expected past period error, got %v", err)
	}

	if err := ValidateSchedulePeriod(13, now.Year()); !domain.IsValidationError(err, domain.ErrKindMonth) {
		t.Errorf("expected month error, got %v", err)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month int
		year  int
		want  int
	}{
		{1, 2025, 31},
		{2, 2025, 28},
		{2, 2028, 29},
		{4, 2025, 30},
		{12, 2025, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestFormatAndParseDate(t *testing.T) {
	date, err := FormatDate(7, 10, time.Now().Year())
	if err != nil {
		t.Fatalf("format date: %v", err)
	}
	day, month, year, err := ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if day != 7 || month != 10 || year != time.Now().Year() {
		t.Errorf("round trip mismatch: %02d.%02d.%d", day, month, year)
	}
}
