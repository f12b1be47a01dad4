package logging

// Level — уровень логирования; уровни упорядочены и сравниваются по значению.
type Level uint

const (
	// LevelDisabled полностью отключает вывод.
	LevelDisabled Level = iota
	// LevelError — только ошибки.
	LevelError
	// LevelWarn — ошибки и предупреждения.
	LevelWarn
	// LevelInfo — плюс основные сообщения о работе сервера.
	LevelInfo
	// LevelDebug — плюс подробности по каждому запросу.
	LevelDebug
)

// NameToLevel переводит имя уровня в Level. Второе значение false, если имя
// неизвестно; в этом случае возвращается LevelDisabled.
func NameToLevel(name string) (Level, bool) {
	switch name {
	case "disabled":
		return LevelDisabled, true
	case "error":
		return LevelError, true
	case "warn":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	default:
		return LevelDisabled, false
	}
}

// String возвращает имя уровня.
func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "disabled"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}
