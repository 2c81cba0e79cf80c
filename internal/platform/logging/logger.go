// Package logging provides structured logging using Go's slog package.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace sits below debug; upstream request and response bodies log here.
const LevelTrace = slog.Level(-8)

// Config holds logging configuration.
type Config struct {
	Level   string // trace, debug, info, warn, error
	Format  string // json, text, pretty
	Service string
	Version string
	File    FileConfig
}

// FileConfig configures an additional rotating JSON log file.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a logger writing to stdout.
func New(cfg *Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a logger writing to w, and to a rotating file when
// cfg.File is enabled. Secrets are redacted on every destination.
func NewWithWriter(cfg *Config, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)
	replace := NewReplaceAttr()

	handler := terminalHandler(cfg.Format, w, level, replace)

	if cfg.File.Enabled && cfg.File.Path != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}

		handler = NewMultiHandler(handler, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replace,
		}))
	}

	return slog.New(handler).With(
		slog.String("service_name", cfg.Service),
		slog.String("service_version", cfg.Version),
	)
}

func terminalHandler(
	format string, w io.Writer, level slog.Level, replace func([]string, slog.Attr) slog.Attr,
) slog.Handler {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replace}

	switch strings.ToLower(format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "pretty":
		charm := log.NewWithOptions(w, log.Options{
			Level:           slogToCharmLevel(level),
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		})

		return &redactingHandler{next: charm, replace: replace}
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogToCharmLevel folds slog levels onto charm's four levels.
func slogToCharmLevel(level slog.Level) log.Level {
	switch {
	case level <= slog.LevelDebug:
		return log.DebugLevel
	case level < slog.LevelWarn:
		return log.InfoLevel
	case level < slog.LevelError:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}

// redactingHandler applies ReplaceAttr for handlers that do not take
// slog.HandlerOptions, such as the charm pretty printer.
type redactingHandler struct {
	next    slog.Handler
	replace func([]string, slog.Attr) slog.Attr
	groups  []string
}

func (h *redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactingHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))

		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.replace(h.groups, a)
	}

	return &redactingHandler{next: h.next.WithAttrs(redacted), replace: h.replace, groups: h.groups}
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)

	return &redactingHandler{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
