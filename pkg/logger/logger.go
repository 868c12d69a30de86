package logger

// Field is a structured log attribute
type Field struct {
	Key   string
	Value any
}

// Logger is the logging interface used across services
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}
