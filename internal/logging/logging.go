// Package logging builds the process logger and carries it on a context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config is the minimal set of logger options exposed on the command line.
type Config struct {
	Version string

	// If Out is nil, stderr is used.
	Out io.Writer

	Level slog.Level
	JSON  bool // true => JSON output, false => text
}

// New creates a configured *slog.Logger.
func New(cfg Config) *slog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler).With(slog.String("version", cfg.Version))
}

// ParseLevel maps a flag value to a level. Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewNop returns a logger that discards all log events.
func NewNop() *slog.Logger {
	return slog.New(nopHandler{})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

type ctxKeyType struct{}

var ctxKey ctxKeyType

// WithLogger stores lg on ctx.
func WithLogger(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey, lg)
}

// FromContext returns the logger stored on ctx, or a no-op logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if lg, ok := ctx.Value(ctxKey).(*slog.Logger); ok && lg != nil {
			return lg
		}
	}
	return NewNop()
}

// Entry is one record captured by a TestHandler.
type Entry struct {
	Level slog.Level
	Msg   string
	Attrs map[string]any
}

// TestHandler captures records for assertions. It is safe for concurrent use.
type TestHandler struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTestLogger returns a logger writing into a fresh TestHandler.
func NewTestLogger() (*slog.Logger, *TestHandler) {
	th := &TestHandler{}
	return slog.New(th), th
}

func (h *TestHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *TestHandler) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Msg: r.Message, Attrs: map[string]any{}}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	h.entries = append(h.entries, e)
	h.mu.Unlock()
	return nil
}

func (h *TestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sharedHandler{parent: h, attrs: attrs}
}

func (h *TestHandler) WithGroup(string) slog.Handler { return h }

// Entries returns a copy of the captured records.
func (h *TestHandler) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Find returns the captured records with message msg.
func (h *TestHandler) Find(msg string) []Entry {
	var out []Entry
	for _, e := range h.Entries() {
		if e.Msg == msg {
			out = append(out, e)
		}
	}
	return out
}

// sharedHandler adds attrs while recording into the parent's entry list.
type sharedHandler struct {
	parent *TestHandler
	attrs  []slog.Attr
}

func (s *sharedHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return s.parent.Enabled(ctx, l)
}

func (s *sharedHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(s.attrs...)
	return s.parent.Handle(ctx, r)
}

func (s *sharedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sharedHandler{parent: s.parent, attrs: append(append([]slog.Attr(nil), s.attrs...), attrs...)}
}

func (s *sharedHandler) WithGroup(string) slog.Handler { return s }

var (
	_ slog.Handler = nopHandler{}
	_ slog.Handler = (*TestHandler)(nil)
	_ slog.Handler = (*sharedHandler)(nil)
)
