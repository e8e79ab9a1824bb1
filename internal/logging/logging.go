// Package logging adapts zap and zerolog to crm.Logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Backend names.
const (
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
)

// Static errors for err113 compliance.
var (
	ErrUnknownBackend = errors.New("unknown log backend")
)

// Config selects and configures a logging backend.
type Config struct {
	Backend string // "zap" or "zerolog"
	Level   string // "debug", "info", "warn", "error"
	Output  io.Writer
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Backend: constants.DefaultLogBackend,
		Level:   constants.DefaultLogLevel,
		Output:  os.Stderr,
	}
}

// New creates a crm.Logger for cfg.
func New(cfg Config) (crm.Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendZap:
		level, err := parseZapLevel(cfg.Level)
		if err != nil {
			return nil, err
		}

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(cfg.Output),
			zap.NewAtomicLevelAt(level),
		)

		return NewZap(zap.New(core)), nil
	case BackendZerolog:
		level, err := parseZerologLevel(cfg.Level)
		if err != nil {
			return nil, err
		}

		return NewZerolog(zerolog.New(cfg.Output).Level(level).With().Timestamp().Logger()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func parseZapLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}

	var l zapcore.Level

	err := l.UnmarshalText([]byte(level))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parsing log level: %w", err)
	}

	return l, nil
}

func parseZerologLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}

	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("parsing log level: %w", err)
	}

	return l, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// sortedKeys keeps field order stable in encoded output.
func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
