package logging

import (
	"go.uber.org/zap"
)

// ZapLogger implements crm.Logger on a *zap.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZap wraps logger. A nil logger discards everything.
func NewZap(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{logger: logger}
}

// Zap returns the wrapped logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Debug implements crm.Logger.
func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

// Info implements crm.Logger.
func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

// Warn implements crm.Logger.
func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

// Error implements crm.Logger.
func (l *ZapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

func zapFields(fields map[string]interface{}) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, key := range sortedKeys(fields) {
		result = append(result, zap.Any(key, fields[key]))
	}

	return result
}
