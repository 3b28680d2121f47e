package logger

import (
	"context"
	"log/slog"
	"os"
)

type SlogLogger struct {
	logger *slog.Logger
}

type SlogEnvironment string

const (
	EnvLocal SlogEnvironment = "local"
	EnvDev   SlogEnvironment = "dev"
)

func NewSlogLogger(env SlogEnvironment) *SlogLogger {
	var slogger *slog.Logger

	switch env {
	case EnvDev:
		slogger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		slogger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return &SlogLogger{
		logger: slogger,
	}
}

func toSlogArgs(fields []any) []any {
	args := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if attr, ok := field.(Attr); ok {
			args = append(args, slog.Any(attr.Key, attr.Value))
			continue
		}
		args = append(args, field)
	}
	return args
}

func (s *SlogLogger) Debug(msg string, fields ...any) {
	s.logger.Debug(msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) Info(msg string, fields ...any) {
	s.logger.Info(msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) Warn(msg string, fields ...any) {
	s.logger.Warn(msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) Error(msg string, fields ...any) {
	s.logger.Error(msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) DebugContext(ctx context.Context, msg string, fields ...any) {
	s.logger.DebugContext(ctx, msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) InfoContext(ctx context.Context, msg string, fields ...any) {
	s.logger.InfoContext(ctx, msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) WarnContext(ctx context.Context, msg string, fields ...any) {
	s.logger.WarnContext(ctx, msg, toSlogArgs(fields)...)
}

func (s *SlogLogger) ErrorContext(ctx context.Context, msg string, fields ...any) {
	s.logger.ErrorContext(ctx, msg, toSlogArgs(fields)...)
}
