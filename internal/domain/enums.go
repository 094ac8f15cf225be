package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

type DutyType string

const (
	DutyTypePDN  DutyType = "ПДН"  // подразделение по делам несовершеннолетних
	DutyTypePPSP DutyType = "ППСП" // патрульно-постовая служба полиции
	DutyTypeUUP  DutyType = "УУП"  // участковые уполномоченные полиции
)

var dutyTypes = []DutyType{DutyTypePDN, DutyTypePPSP, DutyTypeUUP}

// латинские коды принимаются наравне с кириллическими значениями
var dutyTypeAliases = map[string]DutyType{
	"PDN":  DutyTypePDN,
	"PPSP": DutyTypePPSP,
	"UUP":  DutyTypeUUP,
}

func DutyTypes() []DutyType {
	return append([]DutyType(nil), dutyTypes...)
}

func (d DutyType) IsValid() bool {
	for _, dt := range dutyTypes {
		if d == dt {
			return true
		}
	}
	return false
}

func (d DutyType) String() string {
	return string(d)
}

func ParseDutyType(value string) (DutyType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if dt := DutyType(normalized); dt.IsValid() {
		return dt, nil
	}
	if dt, ok := dutyTypeAliases[normalized]; ok {
		return dt, nil
	}
	return "", &ValidationError{
		Kind:    ErrKindDutyType,
		Field:   "dutyType",
		Value:   value,
		Message: fmt.Sprintf("unknown duty type, valid types: %s", joinDutyTypes()),
	}
}

func joinDutyTypes() string {
	names := make([]string, len(dutyTypes))
	for i, dt := range dutyTypes {
		names[i] = string(dt)
	}
	return strings.Join(names, ", ")
}

// Month is the canonical numeric month (1-12). The Russian name is the display
// form only: filenames and date arithmetic always go through Number.
type Month int

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [12]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

func (m Month) IsValid() bool {
	return m >= January && m <= December
}

// Number returns the numeric form (1-12) used for file naming and date math.
func (m Month) Number() int {
	return int(m)
}

// Name returns the lower-case Russian month name.
func (m Month) Name() string {
	if !m.IsValid() {
		return ""
	}
	return monthNames[m-1]
}

// DisplayName returns the capitalized Russian month name.
func (m Month) DisplayName() string {
	name := []rune(m.Name())
	if len(name) == 0 {
		return ""
	}
	name[0] = unicode.ToUpper(name[0])
	return string(name)
}

func (m Month) String() string {
	return m.Name()
}

func MonthFromNumber(number int) (Month, error) {
	m := Month(number)
	if !m.IsValid() {
		return 0, &ValidationError{
			Kind:    ErrKindMonth,
			Field:   "month",
			Value:   fmt.Sprintf("%d", number),
			Message: "month number must be between 1 and 12",
		}
	}
	return m, nil
}

func ParseMonthName(name string) (Month, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, monthName := range monthNames {
		if monthName == normalized {
			return Month(i + 1), nil
		}
	}
	return 0, &ValidationError{
		Kind:    ErrKindMonth,
		Field:   "month",
		Value:   name,
		Message: fmt.Sprintf("unknown month name, valid names: %s", strings.Join(monthNames[:], ", ")),
	}
}

// Month is stored as its display name; the numeric form never appears in
// documents so the two cannot be conflated on load.
func (m Month) MarshalJSON() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid month %d", int(m))
	}
	return json.Marshal(m.DisplayName())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseMonthName(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatExcel    ExportFormat = "excel"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

var exportFormats = []ExportFormat{FormatJSON, FormatExcel, FormatCSV, FormatMarkdown, FormatHTML}

func ExportFormats() []ExportFormat {
	return append([]ExportFormat(nil), exportFormats...)
}

func (f ExportFormat) IsValid() bool {
	for _, format := range exportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (f ExportFormat) String() string {
	return string(f)
}

// Extension returns the file extension without the leading dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatExcel:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	default:
		return ""
	}
}

func ParseExportFormat(value string) (ExportFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if f := ExportFormat(normalized); f.IsValid() {
		return f, nil
	}
	supported := make([]string, len(exportFormats))
	for i, format := range exportFormats {
		supported[i] = string(format)
	}
	return "", &ExportError{
		Kind:   ErrKindFormatUnsupported,
		Format: value,
		Reason: fmt.Sprintf("supported formats: %s", strings.Join(supported, ", ")),
	}
}

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
	EnvTesting     Environment = "testing"
)

// ParseEnvironment defaults to production for unknown values.
func ParseEnvironment(value string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(value))) {
	case EnvDevelopment:
		return EnvDevelopment
	case EnvTesting:
		return EnvTesting
	default:
		return EnvProduction
	}
}

func (e Environment) IsDevelopment() bool {
	return e == EnvDevelopment
}
