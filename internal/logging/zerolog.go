package logging

import (
	"github.com/rs/zerolog"
)

// ZerologLogger implements crm.Logger on a zerolog.Logger.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerolog wraps logger.
func NewZerolog(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Debug implements crm.Logger.
func (l *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.write(l.logger.Debug(), msg, fields)
}

// Info implements crm.Logger.
func (l *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	l.write(l.logger.Info(), msg, fields)
}

// Warn implements crm.Logger.
func (l *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.write(l.logger.Warn(), msg, fields)
}

// Error implements crm.Logger.
func (l *ZerologLogger) Error(msg string, fields map[string]interface{}) {
	l.write(l.logger.Error(), msg, fields)
}

func (l *ZerologLogger) write(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for _, key := range sortedKeys(fields) {
		event = event.Interface(key, fields[key])
	}

	event.Msg(msg)
}
