package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"appforge-pipeline/config"
)

// Fields aliases logrus.Fields so callers never import logrus directly.
type Fields = logrus.Fields

// Logger wraps logrus with key/value convenience methods used across the
// pipeline. All methods are safe on a nil receiver, so components that run
// without logging wired up (pure engine tests, mostly) just stay quiet.
type Logger struct {
	base *logrus.Logger
}

func New(cfg config.LogConfig) (*Logger, error) {
	base := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	base.SetLevel(level)

	switch cfg.Format {
	case "text":
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	}

	var out io.Writer
	switch cfg.Output {
	case "stderr":
		out = os.Stderr
	case "file":
		out = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	default:
		out = os.Stdout
	}
	base.SetOutput(out)

	return &Logger{base: base}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return &Logger{base: base}
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.log(logrus.DebugLevel, msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.log(logrus.InfoLevel, msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.log(logrus.WarnLevel, msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.log(logrus.ErrorLevel, msg, kv...) }

func (l *Logger) log(level logrus.Level, msg string, kv ...interface{}) {
	if l == nil || l.base == nil {
		return
	}
	l.base.WithFields(pairsToFields(kv)).Log(level, msg)
}

func (l *Logger) WithError(err error) *logrus.Entry {
	if l == nil || l.base == nil {
		return logrus.NewEntry(discarded())
	}
	return l.base.WithError(err)
}

func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	if l == nil || l.base == nil {
		return logrus.NewEntry(discarded())
	}
	return l.base.WithFields(fields)
}

// LogService records the outcome of a named service operation with timing.
func (l *Logger) LogService(service, operation string, duration time.Duration, fields Fields, err error) {
	if l == nil || l.base == nil {
		return
	}
	entry := l.base.WithFields(Fields{
		"service":     service,
		"operation":   operation,
		"duration_ms": duration.Milliseconds(),
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	if err != nil {
		entry.WithError(err).Error("service operation failed")
		return
	}
	entry.Debug("service operation completed")
}

// LogTurn records one processed conversation turn.
func (l *Logger) LogTurn(conversationID, userID, rule string, percentage int, duration time.Duration, err error) {
	if l == nil || l.base == nil {
		return
	}
	entry := l.base.WithFields(Fields{
		"conversation_id": conversationID,
		"user_id":         userID,
		"rule":            rule,
		"completion_pct":  percentage,
		"duration_ms":     duration.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("turn failed")
		return
	}
	entry.Info("turn processed")
}

func pairsToFields(kv []interface{}) Fields {
	fields := Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		fields[key] = kv[i+1]
	}
	if len(kv)%2 != 0 {
		fields["extra"] = kv[len(kv)-1]
	}
	return fields
}

func discarded() *logrus.Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return base
}
