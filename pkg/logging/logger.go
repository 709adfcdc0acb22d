package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures New
type Config struct {
	// Level is the minimum level written, as understood by zapcore.ParseLevel. Defaults to info.
	Level string

	// Development switches to a colored console encoder
	Development bool

	// BufferSize is the number of entries kept in memory. Defaults to DefaultBufferSize.
	BufferSize int

	// Output receives encoded log lines. Defaults to os.Stderr.
	Output io.Writer
}

// Logger is a zap logger that also records into a Buffer
type Logger struct {
	*zap.Logger

	Buffer *Buffer

	level     zap.AtomicLevel
	baseLevel zapcore.Level
}

// New builds a logger writing to cfg.Output and to an in-memory Buffer
func New(cfg Config) (*Logger, error) {
	baseLevel := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		baseLevel = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if cfg.Development {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	level := zap.NewAtomicLevelAt(baseLevel)
	buffer := NewBuffer(cfg.BufferSize)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(out), level),
		buffer.Core(level),
	)

	return &Logger{
		Logger:    zap.New(core),
		Buffer:    buffer,
		level:     level,
		baseLevel: baseLevel,
	}, nil
}

// SetDebug toggles debug output on top of the configured level
func (l *Logger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(l.baseLevel)
}

// DebugEnabled reports whether debug entries are currently recorded
func (l *Logger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}
