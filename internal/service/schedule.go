package service

import (
	"errors"
	"fmt"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/domain"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/repository"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/validation"
)

// ScheduleService owns the lifecycle of schedule documents. Every mutation
// goes through the same sequence: load, change, re-validate the whole
// aggregate, save. A document that fails validation is never written.
type ScheduleService struct {
	cfg  *config.Config
	repo *repository.Repository
}

func NewScheduleService(cfg *config.Config, repo *repository.Repository) *ScheduleService {
	return &ScheduleService{cfg: cfg, repo: repo}
}

// Create builds the aggregate from the request, validates it and persists it.
// An existing document for the same period is backed up and replaced.
func (s *ScheduleService) Create(req CreateScheduleRequest) (*domain.Schedule, string, error) {
	schedule, err := s.build(req)
	if err != nil {
		return nil, "", err
	}
	path, err := s.repo.Save(schedule)
	if err != nil {
		return nil, "", err
	}
	return schedule, path, nil
}

// Validate is a dry run of Create: it reports every problem it can find and
// persists nothing.
func (s *ScheduleService) Validate(req CreateScheduleRequest) ValidationResult {
	result := ValidationResult{Errors: []FieldError{}, Warnings: []string{}}

	collect := func(field string, err error) {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fe := fieldErrorFrom(ve)
			if fe.Field == "" {
				fe.Field = field
			} else if field != "" {
				fe.Field = field + "." + fe.Field
			}
			result.Errors = append(result.Errors, fe)
			return
		}
		result.Errors = append(result.Errors, FieldError{
			Field:   field,
			Kind:    string(domain.ErrKindIntegrity),
			Message: err.Error(),
		})
	}

	if err := validation.ValidateMonthNumber(req.Month); err != nil {
		collect("month", err)
	} else if err := validation.ValidateYear(req.Year, s.cfg.Storage.AllowPastDates); err != nil {
		collect("year", err)
	} else if !s.cfg.Storage.AllowPastDates {
		if err := validation.ValidateSchedulePeriod(req.Month, req.Year); err != nil {
			collect("period", err)
		}
	}

	seenIDs := map[int]string{}
	seenNames := map[string]bool{}
	for i, unit := range req.Units {
		prefix := fmt.Sprintf("units[%d]", i)
		if err := validation.ValidateUnitName(unit.UnitName); err != nil {
			collect(prefix+".unitName", err)
		}
		if unit.ID < 1 {
			result.Errors = append(result.Errors, FieldError{
				Field:   prefix + ".id",
				Value:   fmt.Sprintf("%d", unit.ID),
				Kind:    string(domain.ErrKindUnitID),
				Message: "идентификатор подразделения должен быть не меньше 1",
			})
		} else if other, ok := seenIDs[unit.ID]; ok {
			result.Errors = append(result.Errors, FieldError{
				Field:   prefix + ".id",
				Value:   fmt.Sprintf("%d", unit.ID),
				Kind:    string(domain.ErrKindDuplicateUnit),
				Message: fmt.Sprintf("идентификатор уже используется подразделением %q", other),
			})
		} else {
			seenIDs[unit.ID] = unit.UnitName
		}
		if seenNames[unit.UnitName] {
			result.Errors = append(result.Errors, FieldError{
				Field:   prefix + ".unitName",
				Value:   unit.UnitName,
				Kind:    string(domain.ErrKindDuplicateUnit),
				Message: "подразделение указано дважды",
			})
		}
		seenNames[unit.UnitName] = true

		if len(unit.Shifts) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("подразделение %q не имеет дежурств", unit.UnitName))
		}

		seenDates := map[string]bool{}
		for j, shift := range unit.Shifts {
			shiftField := fmt.Sprintf("%s.shifts[%d]", prefix, j)
			dutyType, err := validation.ValidateDutyType(shift.DutyType)
			if err != nil {
				collect(shiftField+".dutyType", err)
				dutyType = domain.DutyTypePPSP
			}
			built, err := domain.NewShift(shift.Date, dutyType, shift.Time, shift.Notes)
			if err != nil {
				collect(shiftField, err)
				continue
			}
			if _, err := validation.ValidateDateString(shift.Date, s.cfg.Storage.AllowPastDates); err != nil {
				collect(shiftField+".date", err)
				continue
			}
			// при разрешённых прошедших датах они проходят, но с предупреждением
			if s.cfg.Storage.AllowPastDates && built.IsPast() {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("дежурство %s уже в прошлом", shift.Date))
			}
			if err := validation.ValidateDateInMonth(shift.Date, req.Month, req.Year); err != nil {
				collect(shiftField+".date", err)
			}
			if seenDates[shift.Date] {
				result.Errors = append(result.Errors, FieldError{
					Field:   shiftField + ".date",
					Value:   shift.Date,
					Kind:    string(domain.ErrKindDuplicateShift),
					Message: "на эту дату уже назначено дежурство",
				})
			}
			seenDates[shift.Date] = true
		}
	}

	if validation.ValidateMonthNumber(req.Month) == nil && s.repo.Exists(req.Year, req.Month) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("график за период %04d-%02d уже существует и будет перезаписан", req.Year, req.Month))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (s *ScheduleService) Get(year, month int) (*domain.Schedule, error) {
	return s.repo.Load(year, month)
}

func (s *ScheduleService) List() ([]domain.ScheduleSummary, error) {
	return s.repo.List()
}

func (s *ScheduleService) Delete(year, month int) error {
	return s.repo.Delete(year, month)
}

// AddShift appends one shift to an existing document and saves it back.
func (s *ScheduleService) AddShift(year, month int, unitName string, input ShiftInput) (*domain.Schedule, error) {
	schedule, err := s.repo.Load(year, month)
	if err != nil {
		return nil, err
	}
	shift, err := s.buildShift(input)
	if err != nil {
		return nil, err
	}
	if err := schedule.AddShift(unitName, shift); err != nil {
		return nil, err
	}
	if _, err := s.repo.Save(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// UpdateShift replaces the shift on the given date. The change is applied as
// remove plus add so the aggregate invariants are checked the same way as for
// a new shift.
func (s *ScheduleService) UpdateShift(year, month int, unitName, date string, input ShiftInput) (*domain.Schedule, error) {
	schedule, err := s.repo.Load(year, month)
	if err != nil {
		return nil, err
	}
	unit := schedule.UnitByName(unitName)
	if unit == nil {
		return nil, &domain.NotFoundError{Identifier: unitName}
	}
	if unit.ShiftByDate(date) == nil {
		return nil, &domain.NotFoundError{Identifier: fmt.Sprintf("%s: %s", unitName, date)}
	}
	shift, err := s.buildShift(input)
	if err != nil {
		return nil, err
	}
	unit.RemoveShift(date)
	if err := schedule.AddShift(unitName, shift); err != nil {
		return nil, err
	}
	if _, err := s.repo.Save(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) RemoveShift(year, month int, unitName, date string) (*domain.Schedule, error) {
	schedule, err := s.repo.Load(year, month)
	if err != nil {
		return nil, err
	}
	unit := schedule.UnitByName(unitName)
	if unit == nil {
		return nil, &domain.NotFoundError{Identifier: unitName}
	}
	if !unit.RemoveShift(date) {
		return nil, &domain.NotFoundError{Identifier: fmt.Sprintf("%s: %s", unitName, date)}
	}
	if _, err := s.repo.Save(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Statistics summarizes a stored document. The weekly average assumes four
// weeks per month.
func (s *ScheduleService) Statistics(year, month int) (Statistics, error) {
	schedule, err := s.repo.Load(year, month)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		Period:       schedule.Metadata.PeriodString(),
		Year:         schedule.Metadata.Year,
		Month:        schedule.Metadata.Month.Number(),
		TotalUnits:   len(schedule.Units),
		ActiveUnits:  len(schedule.UnitsWithShifts()),
		TotalShifts:  schedule.TotalShifts(),
		ShiftsByType: map[string]int{},
		Units:        []UnitStatistics{},
	}
	for dutyType, count := range schedule.ShiftsByType() {
		stats.ShiftsByType[string(dutyType)] = count
	}
	for _, unit := range schedule.Units {
		unitStats := UnitStatistics{
			UnitID:           unit.ID,
			UnitName:         unit.UnitName,
			TotalShifts:      unit.ShiftCount(),
			ShiftsByType:     map[string]int{},
			AvgShiftsPerWeek: float64(unit.ShiftCount()) / 4.0,
		}
		for dutyType, count := range unit.ShiftsByType() {
			unitStats.ShiftsByType[string(dutyType)] = count
		}
		stats.Units = append(stats.Units, unitStats)
	}
	return stats, nil
}

// build assembles and validates the full aggregate from the request.
func (s *ScheduleService) build(req CreateScheduleRequest) (*domain.Schedule, error) {
	if err := validation.ValidateMonthNumber(req.Month); err != nil {
		return nil, err
	}
	if err := validation.ValidateYear(req.Year, s.cfg.Storage.AllowPastDates); err != nil {
		return nil, err
	}
	if !s.cfg.Storage.AllowPastDates {
		if err := validation.ValidateSchedulePeriod(req.Month, req.Year); err != nil {
			return nil, err
		}
	}

	month, err := domain.MonthFromNumber(req.Month)
	if err != nil {
		return nil, err
	}
	metadata, err := domain.NewScheduleMetadata(month, req.Year)
	if err != nil {
		return nil, err
	}
	metadata.CreatedBy = s.cfg.Document.CreatedBy
	metadata.Source = s.cfg.Document.Source
	metadata.Signatory = s.cfg.Document.Signatory
	metadata.Note = s.cfg.Document.Note

	schedule := domain.NewSchedule(metadata)
	for _, unitInput := range req.Units {
		shifts := make([]domain.Shift, 0, len(unitInput.Shifts))
		for _, shiftInput := range unitInput.Shifts {
			shift, err := s.buildShift(shiftInput)
			if err != nil {
				return nil, err
			}
			if err := validation.ValidateDateInMonth(shift.Date, req.Month, req.Year); err != nil {
				return nil, err
			}
			shifts = append(shifts, shift)
		}
		unit, err := domain.NewUnit(unitInput.ID, unitInput.UnitName, shifts)
		if err != nil {
			return nil, err
		}
		if err := schedule.AddUnit(unit); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

func (s *ScheduleService) buildShift(input ShiftInput) (domain.Shift, error) {
	dutyType, err := validation.ValidateDutyType(input.DutyType)
	if err != nil {
		return domain.Shift{}, err
	}
	if _, err := validation.ValidateDateString(input.Date, s.cfg.Storage.AllowPastDates); err != nil {
		return domain.Shift{}, err
	}
	return domain.NewShift(input.Date, dutyType, input.Time, input.Notes)
}
