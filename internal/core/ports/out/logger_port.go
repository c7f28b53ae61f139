package out

import "strings"

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

var logLevelWeights = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

// ParseLogLevel: неизвестный уровень считается DEBUG
func ParseLogLevel(str string) LogLevel {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(str)))
	if _, ok := logLevelWeights[level]; !ok {
		return LogLevelDebug
	}
	return level
}

// Enabled: пишется ли сообщение уровня level при пороге min
func (level LogLevel) Enabled(min LogLevel) bool {
	return logLevelWeights[level] >= logLevelWeights[min]
}

type LogFields map[string]interface{}

type LoggerPort interface {
	Debug(event string, fields LogFields)
	Info(event string, fields LogFields)
	Warn(event string, fields LogFields)
	Error(event string, fields LogFields)
	WithFields(fields LogFields) LoggerPort
	WithModule(module string) LoggerPort
}
