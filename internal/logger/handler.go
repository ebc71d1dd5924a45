package logger

import (
	"context"
	"fmt"
	"go/build"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// ParseLevel accepts debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelDebug, fmt.Errorf("invalid log level %q, one of debug, info, warn or error expected", s)
	}
}

// New builds a logger writing in the given format (json or text) which strips
// common prefix from file paths (rootPath param) and tags records with the
// request id found under requestIdKey in the context.
func New(w io.Writer, lvl slog.Level, format, rootPath string, requestIdKey any) (*slog.Logger, error) {
	ho := slog.HandlerOptions{
		Level: lvl,
	}

	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, &ho)
	case "text", "":
		h = slog.NewTextHandler(w, &ho)
	default:
		return nil, fmt.Errorf("log format must be json or text, got %q", format)
	}

	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		gopath = build.Default.GOPATH
	}

	return slog.New(&handler{
		baseHandler:  h,
		rootPath:     strings.TrimSuffix(rootPath, "/") + "/",
		goPath:       strings.TrimSuffix(gopath, "/") + "/",
		requestIdKey: requestIdKey,
	}), nil
}

// SetupSLog installs New's logger as the slog default, writing to stderr.
func SetupSLog(lvl slog.Level, format, rootPath string, requestIdKey any) error {
	l, err := New(os.Stderr, lvl, format, rootPath, requestIdKey)
	if err != nil {
		return err
	}

	slog.SetDefault(l)
	return nil
}

type handler struct {
	baseHandler  slog.Handler
	rootPath     string
	goPath       string
	requestIdKey any
}

func (e *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return e.baseHandler.Enabled(ctx, level)
}

func (e *handler) Handle(ctx context.Context, record slog.Record) error {
	record = record.Clone()

	if record.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := fs.Next()
		file := f.File
		if strings.HasPrefix(file, e.rootPath) {
			file = file[len(e.rootPath):]
		} else if strings.HasPrefix(file, e.goPath) {
			file = file[len(e.goPath):]
		}
		record.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: f.Function,
			File:     file,
			Line:     f.Line,
		}))
	}

	if e.requestIdKey != nil {
		if requestId, ok := ctx.Value(e.requestIdKey).(string); ok && requestId != "" {
			record.AddAttrs(slog.String("request_id", requestId))
		}
	}

	return e.baseHandler.Handle(ctx, record)
}

func (e *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{
		baseHandler:  e.baseHandler.WithAttrs(attrs),
		rootPath:     e.rootPath,
		goPath:       e.goPath,
		requestIdKey: e.requestIdKey,
	}
}

func (e *handler) WithGroup(name string) slog.Handler {
	return &handler{
		baseHandler:  e.baseHandler.WithGroup(name),
		rootPath:     e.rootPath,
		goPath:       e.goPath,
		requestIdKey: e.requestIdKey,
	}
}
