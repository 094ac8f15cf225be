package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is a closed tag callers can branch on instead of matching message
// text.
type ErrorKind string

const (
	// ошибки валидации
	ErrKindDateFormat ErrorKind = "date_format"
	ErrKindDateRange  ErrorKind = "date_range"
	ErrKindMonth      ErrorKind = "month"
	ErrKindYear       ErrorKind = "year"
	ErrKindTimeRange  ErrorKind = "time_range"
	ErrKindDutyType   ErrorKind = "duty_type"
	ErrKindUnitName   ErrorKind = "unit_name"
	ErrKindUnitID     ErrorKind = "unit_id"
	ErrKindPeriod     ErrorKind = "period"

	// нарушения бизнес-правил
	ErrKindDuplicateShift     ErrorKind = "duplicate_shift"
	ErrKindDuplicateUnit      ErrorKind = "duplicate_unit"
	ErrKindShiftOutsidePeriod ErrorKind = "shift_outside_period"
	ErrKindShiftLimit         ErrorKind = "shift_limit"
	ErrKindEmptySchedule      ErrorKind = "empty_schedule"

	// ошибки данных
	ErrKindIntegrity     ErrorKind = "integrity"
	ErrKindSerialization ErrorKind = "serialization"

	// ошибки экспорта
	ErrKindFormatUnsupported ErrorKind = "format_unsupported"
	ErrKindWriteFailed       ErrorKind = "write_failed"
)

// ValidationError carries the offending field and the received value alongside
// the closed kind; it covers both field validation and business-rule
// violations.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (получено: %q)", e.Field, e.Message, e.Value)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schedule not found: %s", e.Identifier)
}

// DataError distinguishes a document that is not JSON at all (serialization)
// from one that parses but fails domain validation (integrity).
type DataError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Path, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("filesystem %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

type ExportError struct {
	Kind   ErrorKind
	Format string
	Reason string
	Err    error
}

func (e *ExportError) Error() string {
	msg := fmt.Sprintf("export to %s failed (%s)", e.Format, e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err (or anything it wraps) is a
// ValidationError, optionally of specific kinds.
func IsValidationError(err error, kinds ...ErrorKind) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, kind := range kinds {
		if ve.Kind == kind {
			return true
		}
	}
	return false
}
