// Package seed генерирует правдоподобные тестовые графики для локальной
// разработки.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/validation"
)

var seedTimes = []string{
	"18:00-22:00",
	"19:00-23:00",
	"10:00-14:00",
}

// GenerateRandomSchedule builds a valid schedule for the given period with
// every registered unit and up to shiftsPerUnit future shifts each.
func GenerateRandomSchedule(cfg *config.Config, month, year, shiftsPerUnit int) (*domain.Schedule, error) {
	m, err := domain.MonthFromNumber(month)
	if err != nil {
		return nil, err
	}
	metadata, err := domain.NewScheduleMetadata(m, year)
	if err != nil {
		return nil, err
	}
	metadata.CreatedBy = "seed"
	metadata.Source = cfg.Document.Source
	metadata.Signatory = cfg.Document.Signatory
	metadata.Note = cfg.Document.Note

	schedule := domain.NewSchedule(metadata)
	dutyTypes := domain.DutyTypes()
	days := validation.DaysInMonth(month, year)

	for i, unitName := range domain.Units {
		shifts := make([]domain.Shift, 0, shiftsPerUnit)
		for _, day := range randomDays(days, shiftsPerUnit) {
			date := fmt.Sprintf("%02d.%02d.%04d", day, month, year)
			if !cfg.Storage.AllowPastDates && !validation.IsDateInFuture(date) {
				continue
			}
			shift, err := domain.NewShift(
				date,
				dutyTypes[rand.Intn(len(dutyTypes))],
				seedTimes[rand.Intn(len(seedTimes))],
				"",
			)
			if err != nil {
				return nil, err
			}
			shifts = append(shifts, shift)
		}

		unit, err := domain.NewUnit(i+1, unitName, shifts)
		if err != nil {
			return nil, err
		}
		if err := schedule.AddUnit(unit); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

// randomDays picks n distinct days of the month, sorted ascending.
func randomDays(daysInMonth, n int) []int {
	if n > daysInMonth {
		n = daysInMonth
	}
	days := rand.Perm(daysInMonth)[:n]
	for i := range days {
		days[i]++
	}
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j] < days[j-1]; j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

// NextPeriod returns the month and year following the current date, so seeded
// schedules never collide with the past-period check.
func NextPeriod() (month, year int) {
	next := time.Now().AddDate(0, 1, 0)
	return int(next.Month()), next.Year()
}
