package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	dateRe      = regexp.MustCompile(DatePattern)
	timeRangeRe = regexp.MustCompile(TimeRangePattern)
)

// Shift — одно дежурство подразделения в конкретную дату. После включения в
// Unit значение не изменяется: замена выполняется как удаление и добавление.
type Shift struct {
	Date     string   `json:"date"`
	DutyType DutyType `json:"dutyType"`
	Time     string   `json:"time"`
	Notes    string   `json:"notes"`
}

// NewShift validates the date format, the duty type and the time range. An
// empty time falls back to the standard patrol window, an empty note to the
// standard instruction text.
func NewShift(date string, dutyType DutyType, timeRange string, notes string) (Shift, error) {
	if !dateRe.MatchString(date) {
		return Shift{}, &ValidationError{
			Kind:    ErrKindDateFormat,
			Field:   "date",
			Value:   date,
			Message: "expected format DD.MM.YYYY",
		}
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Shift{}, &ValidationError{
			Kind:    ErrKindDateRange,
			Field:   "date",
			Value:   date,
			Message: "no such calendar date",
		}
	}
	if !dutyType.IsValid() {
		return Shift{}, &ValidationError{
			Kind:    ErrKindDutyType,
			Field:   "dutyType",
			Value:   string(dutyType),
			Message: fmt.Sprintf("unknown duty type, valid types: %s", joinDutyTypes()),
		}
	}
	if timeRange == "" {
		timeRange = DefaultShiftTime
	}
	if _, _, err := ParseTimeRange(timeRange); err != nil {
		return Shift{}, err
	}
	if notes == "" {
		notes = DefaultShiftNote
	}

	return Shift{
		Date:     date,
		DutyType: dutyType,
		Time:     timeRange,
		Notes:    notes,
	}, nil
}

// ParseTimeRange is the single time-range check for the whole system: both
// construction and request validation go through it, so the
// no-overnight-ranges policy cannot drift between the two.
func ParseTimeRange(timeRange string) (start, end time.Time, err error) {
	invalid := func(message string) error {
		return &ValidationError{
			Kind:    ErrKindTimeRange,
			Field:   "time",
			Value:   timeRange,
			Message: message,
		}
	}

	if !timeRangeRe.MatchString(timeRange) {
		return time.Time{}, time.Time{}, invalid("expected format HH:MM-HH:MM")
	}
	parts := strings.SplitN(timeRange, "-", 2)
	start, err = time.Parse(TimeLayout, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, invalid("invalid start time")
	}
	end, err = time.Parse(TimeLayout, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, invalid("invalid end time")
	}
	// диапазоны через полночь не поддерживаются
	if !end.After(start) {
		return time.Time{}, time.Time{}, invalid("end time must be after start time")
	}
	return start, end, nil
}

// DateTime returns the parsed shift date. The date is validated at
// construction, so a zero time is only possible for a hand-built Shift.
func (s Shift) DateTime() time.Time {
	t, _ := time.Parse(DateLayout, s.Date)
	return t
}

// Weekday returns the Russian weekday name for the shift date.
func (s Shift) Weekday() string {
	return weekdayNames[(int(s.DateTime().Weekday())+6)%7]
}

// IsPast compares calendar dates at local midnight, so a shift today is not
// yet past.
func (s Shift) IsPast() bool {
	d := s.DateTime()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local).Before(today)
}

func (s Shift) String() string {
	return fmt.Sprintf("%s - %s (%s)", s.Date, s.DutyType, s.Time)
}

// Unit — дежурства одного подразделения. В пределах подразделения на одну
// дату допускается не более одного дежурства.
type Unit struct {
	ID       int     `json:"id"`
	UnitName string  `json:"unitName"`
	Shifts   []Shift `json:"shifts"`
}

func NewUnit(id int, unitName string, shifts []Shift) (*Unit, error) {
	if id < 1 {
		return nil, &ValidationError{
			Kind:    ErrKindUnitID,
			Field:   "id",
			Value:   fmt.Sprintf("%d", id),
			Message: "unit id must be positive",
		}
	}
	if !IsKnownUnit(unitName) {
		return nil, &ValidationError{
			Kind:    ErrKindUnitName,
			Field:   "unitName",
			Value:   unitName,
			Message: "unit is not in the official registry",
		}
	}

	unit := &Unit{ID: id, UnitName: unitName, Shifts: make([]Shift, 0, len(shifts))}
	for _, shift := range shifts {
		if err := unit.AddShift(shift); err != nil {
			return nil, err
		}
	}
	return unit, nil
}

// AddShift rejects a second shift on the same date regardless of duty type.
func (u *Unit) AddShift(shift Shift) error {
	if existing := u.ShiftByDate(shift.Date); existing != nil {
		return &ValidationError{
			Kind:    ErrKindDuplicateShift,
			Field:   "date",
			Value:   shift.Date,
			Message: fmt.Sprintf("shift already exists for %s (type: %s)", u.UnitName, existing.DutyType),
		}
	}
	if len(u.Shifts) >= MaxShiftsPerUnit {
		return &ValidationError{
			Kind:    ErrKindShiftLimit,
			Field:   "shifts",
			Value:   fmt.Sprintf("%d", len(u.Shifts)),
			Message: fmt.Sprintf("shift limit exceeded for %s: %d/%d", u.UnitName, len(u.Shifts), MaxShiftsPerUnit),
		}
	}
	u.Shifts = append(u.Shifts, shift)
	return nil
}

func (u *Unit) RemoveShift(date string) bool {
	for i, shift := range u.Shifts {
		if shift.Date == date {
			u.Shifts = append(u.Shifts[:i], u.Shifts[i+1:]...)
			return true
		}
	}
	return false
}

func (u *Unit) ShiftByDate(date string) *Shift {
	for i := range u.Shifts {
		if u.Shifts[i].Date == date {
			return &u.Shifts[i]
		}
	}
	return nil
}

func (u *Unit) SortedShifts() []Shift {
	sorted := append([]Shift(nil), u.Shifts...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateTime().Before(sorted[j].DateTime())
	})
	return sorted
}

func (u *Unit) ShiftCount() int {
	return len(u.Shifts)
}

func (u *Unit) ShiftsByType() map[DutyType]int {
	counts := make(map[DutyType]int)
	for _, shift := range u.Shifts {
		counts[shift.DutyType]++
	}
	return counts
}

// ScheduleMetadata — заголовок документа за один период. Пара (month, year)
// однозначно определяет файл в хранилище.
type ScheduleMetadata struct {
	DocumentType string    `json:"documentType"`
	Month        Month     `json:"month"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
	Source       string    `json:"source,omitempty"`
	Signatory    string    `json:"signatory,omitempty"`
	Note         string    `json:"note,omitempty"`
}

func NewScheduleMetadata(month Month, year int) (ScheduleMetadata, error) {
	if !month.IsValid() {
		return ScheduleMetadata{}, &ValidationError{
			Kind:    ErrKindMonth,
			Field:   "month",
			Value:   fmt.Sprintf("%d", int(month)),
			Message: "month number must be between 1 and 12",
		}
	}
	return ScheduleMetadata{
		DocumentType: "patrol_schedule",
		Month:        month,
		Year:         year,
		CreatedAt:    time.Now(),
		CreatedBy:    "manual_input",
	}, nil
}

// PeriodString returns the display form, e.g. "Октябрь 2025".
func (m ScheduleMetadata) PeriodString() string {
	return fmt.Sprintf("%s %d", m.Month.DisplayName(), m.Year)
}

// Schedule — агрегат: все дежурства всех подразделений за один период.
// Хранится и загружается только целиком.
type Schedule struct {
	Metadata ScheduleMetadata `json:"metadata"`
	Units    []*Unit          `json:"schedule"`
}

func NewSchedule(metadata ScheduleMetadata) *Schedule {
	return &Schedule{Metadata: metadata, Units: []*Unit{}}
}

// AddUnit enforces unique ids, unique names and period membership of every
// shift in the unit.
func (s *Schedule) AddUnit(unit *Unit) error {
	if s.UnitByID(unit.ID) != nil {
		return &ValidationError{
			Kind:    ErrKindDuplicateUnit,
			Field:   "id",
			Value:   fmt.Sprintf("%d", unit.ID),
			Message: "unit with this id already exists",
		}
	}
	if s.UnitByName(unit.UnitName) != nil {
		return &ValidationError{
			Kind:    ErrKindDuplicateUnit,
			Field:   "unitName",
			Value:   unit.UnitName,
			Message: "unit with this name already exists",
		}
	}
	for _, shift := range unit.Shifts {
		if err := s.checkShiftInPeriod(shift); err != nil {
			return err
		}
	}
	s.Units = append(s.Units, unit)
	return nil
}

// AddShift adds a shift to the named unit, rejecting dates outside the
// schedule's own period at the point of insertion.
func (s *Schedule) AddShift(unitName string, shift Shift) error {
	unit := s.UnitByName(unitName)
	if unit == nil {
		return &ValidationError{
			Kind:    ErrKindUnitName,
			Field:   "unitName",
			Value:   unitName,
			Message: "unit is not part of this schedule",
		}
	}
	if err := s.checkShiftInPeriod(shift); err != nil {
		return err
	}
	return unit.AddShift(shift)
}

func (s *Schedule) checkShiftInPeriod(shift Shift) error {
	date := shift.DateTime()
	if int(date.Month()) != s.Metadata.Month.Number() || date.Year() != s.Metadata.Year {
		return &ValidationError{
			Kind:    ErrKindShiftOutsidePeriod,
			Field:   "date",
			Value:   shift.Date,
			Message: fmt.Sprintf("shift date is outside of period %02d/%d", s.Metadata.Month.Number(), s.Metadata.Year),
		}
	}
	return nil
}

func (s *Schedule) UnitByID(id int) *Unit {
	for _, unit := range s.Units {
		if unit.ID == id {
			return unit
		}
	}
	return nil
}

func (s *Schedule) UnitByName(unitName string) *Unit {
	for _, unit := range s.Units {
		if unit.UnitName == unitName {
			return unit
		}
	}
	return nil
}

func (s *Schedule) TotalShifts() int {
	total := 0
	for _, unit := range s.Units {
		total += unit.ShiftCount()
	}
	return total
}

func (s *Schedule) UnitsWithShifts() []*Unit {
	units := make([]*Unit, 0, len(s.Units))
	for _, unit := range s.Units {
		if unit.ShiftCount() > 0 {
			units = append(units, unit)
		}
	}
	return units
}

func (s *Schedule) ShiftsByType() map[DutyType]int {
	counts := make(map[DutyType]int)
	for _, unit := range s.Units {
		for _, shift := range unit.Shifts {
			counts[shift.DutyType]++
		}
	}
	return counts
}

func (s *Schedule) IsEmpty() bool {
	return len(s.Units) == 0 || s.TotalShifts() == 0
}

// Validate re-checks the whole aggregate. It is run before every persist and
// after every load, so a hand-edited document cannot bypass the construction
// invariants.
func (s *Schedule) Validate() error {
	if !s.Metadata.Month.IsValid() {
		return &ValidationError{
			Kind:    ErrKindMonth,
			Field:   "month",
			Value:   fmt.Sprintf("%d", int(s.Metadata.Month)),
			Message: "month number must be between 1 and 12",
		}
	}

	seenIDs := make(map[int]bool)
	seenNames := make(map[string]bool)
	for _, unit := range s.Units {
		if seenIDs[unit.ID] {
			return &ValidationError{
				Kind:    ErrKindDuplicateUnit,
				Field:   "id",
				Value:   fmt.Sprintf("%d", unit.ID),
				Message: "duplicate unit id",
			}
		}
		seenIDs[unit.ID] = true

		if seenNames[unit.UnitName] {
			return &ValidationError{
				Kind:    ErrKindDuplicateUnit,
				Field:   "unitName",
				Value:   unit.UnitName,
				Message: "duplicate unit name",
			}
		}
		seenNames[unit.UnitName] = true

		if !IsKnownUnit(unit.UnitName) {
			return &ValidationError{
				Kind:    ErrKindUnitName,
				Field:   "unitName",
				Value:   unit.UnitName,
				Message: "unit is not in the official registry",
			}
		}

		seenDates := make(map[string]bool)
		for _, shift := range unit.Shifts {
			if _, err := NewShift(shift.Date, shift.DutyType, shift.Time, shift.Notes); err != nil {
				return err
			}
			if seenDates[shift.Date] {
				return &ValidationError{
					Kind:    ErrKindDuplicateShift,
					Field:   "date",
					Value:   shift.Date,
					Message: fmt.Sprintf("duplicate shift date for %s", unit.UnitName),
				}
			}
			seenDates[shift.Date] = true

			if err := s.checkShiftInPeriod(shift); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schedule) String() string {
	return fmt.Sprintf("Schedule for %s: %d shifts across %d units",
		s.Metadata.PeriodString(), s.TotalShifts(), len(s.UnitsWithShifts()))
}

// ScheduleSummary — облегчённое описание сохранённого документа для списков.
type ScheduleSummary struct {
	Filename    string    `json:"filename"`
	Month       string    `json:"month"`
	MonthNumber int       `json:"monthNumber"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"createdAt"`
	UnitCount   int       `json:"unitCount"`
	TotalShifts int       `json:"totalShifts"`
}
