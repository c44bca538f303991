package tinylog

import (
	"context"

	"github.com/tinytelemetry/tinylog/internal/severity"
)

// Emergency is Write(value, "emergency").
func (l *Logger) Emergency(value any) error {
	return l.write(context.Background(), "", value, severity.Emergency)
}

// Alert is Write(value, "alert").
func (l *Logger) Alert(value any) error {
	return l.write(context.Background(), "", value, severity.Alert)
}

// Critical is Write(value, "critical").
func (l *Logger) Critical(value any) error {
	return l.write(context.Background(), "", value, severity.Critical)
}

// Error is Write(value, "error").
func (l *Logger) Error(value any) error {
	return l.write(context.Background(), "", value, severity.Error)
}

// Warning is Write(value, "warning").
func (l *Logger) Warning(value any) error {
	return l.write(context.Background(), "", value, severity.Warning)
}

// Notice is Write(value, "notice").
func (l *Logger) Notice(value any) error {
	return l.write(context.Background(), "", value, severity.Notice)
}

// Info is Write(value, "info").
func (l *Logger) Info(value any) error {
	return l.write(context.Background(), "", value, severity.Info)
}

// Debug is Write(value, "debug").
func (l *Logger) Debug(value any) error {
	return l.write(context.Background(), "", value, severity.Debug)
}

// Severities lists the labels that have a dedicated method, most severe first.
func Severities() []string {
	return severity.All()
}
