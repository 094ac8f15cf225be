// Package validation contains the stateless date/time/period/name checks used
// by the application services before any entity is constructed or persisted.
// Every function fails with a specific error kind, never a generic one.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
)

var dateRe = regexp.MustCompile(domain.DatePattern)

// ValidateDay checks that day exists in the given month and year. The month is
// checked first: an out-of-range month must surface as a month error, never as
// an arithmetic failure inside the days-in-month computation.
func ValidateDay(day, month, year int) error {
	if err := ValidateMonthNumber(month); err != nil {
		return err
	}
	if day < 1 || day > DaysInMonth(month, year) {
		return &domain.ValidationError{
			Kind:    domain.ErrKindDateRange,
			Field:   "day",
			Value:   strconv.Itoa(day),
			Message: fmt.Sprintf("day is invalid for %02d/%d, this month has %d days", month, year, DaysInMonth(month, year)),
		}
	}
	return nil
}

func ValidateMonthNumber(month int) error {
	if month < 1 || month > 12 {
		return &domain.ValidationError{
			Kind:    domain.ErrKindMonth,
			Field:   "month",
			Value:   strconv.Itoa(month),
			Message: "month number must be between 1 and 12",
		}
	}
	return nil
}

// ValidateYear bounds the year to a configured window around the current
// year. With allowPast false, anything before the current year is rejected.
func ValidateYear(year int, allowPast bool) error {
	currentYear := time.Now().Year()
	minYear := currentYear
	if allowPast {
		minYear = currentYear - domain.PastYearWindow
	}
	maxYear := currentYear + domain.MaxYearOffset

	if year < minYear {
		return &domain.ValidationError{
			Kind:    domain.ErrKindYear,
			Field:   "year",
			Value:   strconv.Itoa(year),
			Message: fmt.Sprintf("year cannot be before %d", minYear),
		}
	}
	if year > maxYear {
		return &domain.ValidationError{
			Kind:    domain.ErrKindYear,
			Field:   "year",
			Value:   strconv.Itoa(year),
			Message: fmt.Sprintf("year cannot be after %d", maxYear),
		}
	}
	return nil
}

// ValidateDateString checks the strict DD.MM.YYYY form, then validates the
// components month first, day second, year last.
func ValidateDateString(date string, allowPast bool) (time.Time, error) {
	matches := dateRe.FindStringSubmatch(date)
	if matches == nil {
		return time.Time{}, &domain.ValidationError{
			Kind:    domain.ErrKindDateFormat,
			Field:   "date",
			Value:   date,
			Message: "expected format DD.MM.YYYY",
		}
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if err := ValidateMonthNumber(month); err != nil {
		return time.Time{}, err
	}
	if err := ValidateDay(day, month, year); err != nil {
		return time.Time{}, err
	}
	if err := ValidateYear(year, allowPast); err != nil {
		return time.Time{}, err
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if !allowPast {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if parsed.Before(today) {
			return time.Time{}, &domain.ValidationError{
				Kind:    domain.ErrKindDateRange,
				Field:   "date",
				Value:   date,
				Message: "date is in the past",
			}
		}
	}
	return parsed, nil
}

// ValidateDateInMonth checks that the date's own month/year equal the given
// period.
func ValidateDateInMonth(date string, month, year int) error {
	parsed, err := ValidateDateString(date, true)
	if err != nil {
		return err
	}
	if int(parsed.Month()) != month || parsed.Year() != year {
		return &domain.ValidationError{
			Kind:    domain.ErrKindShiftOutsidePeriod,
			Field:   "date",
			Value:   date,
			Message: fmt.Sprintf("date is not in %02d/%d", month, year),
		}
	}
	return nil
}

func ValidateDutyType(value string) (domain.DutyType, error) {
	return domain.ParseDutyType(value)
}

// ValidateTimeRange checks HH:MM-HH:MM with both components valid 24-hour
// times and the end strictly after the start. The check itself lives in the
// domain package and is shared with shift construction.
func ValidateTimeRange(timeRange string) (start, end time.Time, err error) {
	return domain.ParseTimeRange(timeRange)
}

func ValidateUnitName(unitName string) error {
	if !domain.IsKnownUnit(unitName) {
		return &domain.ValidationError{
			Kind:    domain.ErrKindUnitName,
			Field:   "unitName",
			Value:   unitName,
			Message: "unit is not in the official registry",
		}
	}
	return nil
}

func ValidateMonthName(monthName string) (domain.Month, error) {
	return domain.ParseMonthName(monthName)
}

// ValidateSchedulePeriod composes the month and year checks for metadata
// construction; a period earlier than the current month is rejected.
func ValidateSchedulePeriod(month, year int) error {
	if err := ValidateMonthNumber(month); err != nil {
		return err
	}
	if err := ValidateYear(year, false); err != nil {
		return err
	}

	now := time.Now()
	currentPeriod := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	if period.Before(currentPeriod) {
		return &domain.ValidationError{
			Kind:    domain.ErrKindPeriod,
			Field:   "period",
			Value:   fmt.Sprintf("%02d/%d", month, year),
			Message: "schedule period is in the past",
		}
	}
	return nil
}

func IsDateInFuture(date string) bool {
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return parsed.After(today)
}

// DaysInMonth is leap-year aware; callers must pass a month in [1,12].
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDate renders validated components as DD.MM.YYYY.
func FormatDate(day, month, year int) (string, error) {
	if err := ValidateDay(day, month, year); err != nil {
		return "", err
	}
	if err := ValidateYear(year, true); err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d.%02d.%d", day, month, year), nil
}

// ParseDate decomposes a validated DD.MM.YYYY string.
func ParseDate(date string) (day, month, year int, err error) {
	parsed, err := ValidateDateString(date, true)
	if err != nil {
		return 0, 0, 0, err
	}
	return parsed.Day(), int(parsed.Month()), parsed.Year(), nil
}
