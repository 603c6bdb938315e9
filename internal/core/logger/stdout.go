package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

type StdoutLogger struct {
	logger *slog.Logger
}

func initStdoutLogger(serviceName string, level LogLevel) (Logger, error) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(level),
	})

	return &StdoutLogger{
		logger: slog.New(handler).With(slog.String("service", serviceName)),
	}, nil
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError, LogLevelFatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	attrs := make([]any, 0, len(entry.Attributes)*2+2)
	for key, value := range entry.Attributes {
		attrs = append(attrs, key, value)
	}
	if entry.Error != nil {
		attrs = append(attrs, "error", entry.Error.Error())
	}

	l.logger.Log(ctx, slogLevel(entry.Level), entry.Message, attrs...)
	if entry.Level == LogLevelFatal {
		os.Exit(1)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
