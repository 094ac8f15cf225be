package domain

const (
	AppName    = "dnd-schedule-manager"
	AppVersion = "1.0.0"
)

const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04"
)

// Единые шаблоны для всех слоёв: и конструкторы, и проверка запросов
// обязаны принимать ровно одни и те же формы.
const (
	DatePattern      = `^(\d{2})\.(\d{2})\.(\d{4})$`
	TimeRangePattern = `^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`
)

const (
	DefaultShiftTime = "18:00-22:00"
	DefaultShiftNote = "Получение инструкций в ОП. Время: 17:30"
)

const (
	MaxYearOffset    = 5  // насколько далеко в будущее можно планировать
	PastYearWindow   = 10 // насколько старые документы ещё принимаются при allowPast
	MaxShiftsPerUnit = 50
)

// Units — реестр добровольных народных дружин Всеволожского района.
// Название подразделения должно точно совпадать с одним из элементов.
var Units = []string{
	"ДНД «Всеволожский дозор»",
	"ДНД «Заневское ГП»",
	"ДНД «Правопорядок Лукоморье»",
	"ДНД «Колтушский патруль»",
	"ДНД «Новодевяткинское СП»",
	"ДНД «Русич»",
	"ДНД «Сертоловское ГП»",
	"ДНД «Северный оплот»",
}

func IsKnownUnit(unitName string) bool {
	for _, name := range Units {
		if name == unitName {
			return true
		}
	}
	return false
}

var weekdayNames = [7]string{
	"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье",
}
