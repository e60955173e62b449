// Package diag formats and dispatches the one-line diagnostics described
// for parsing and emission: "source:line:column: <level>: <module>:
// <message>", optionally followed by a source snippet with a caret under
// the offending column. It is a thin restyling of charm.land/log/v2,
// which supplies the leveled, structured logger underneath.
package diag

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	charmlog "charm.land/log/v2"

	tok "github.com/atomkit/yamlkit/internal/token"
)

// Level mirrors charmlog's levels under the names this package's
// messages use.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

func (l Level) charm() charmlog.Level {
	switch l {
	case LevelDebug:
		return charmlog.DebugLevel
	case LevelInfo:
		return charmlog.InfoLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelError:
		return charmlog.ErrorLevel
	}
	return charmlog.InfoLevel
}

// Diagnostic is one reported condition, tied to a source position and
// the module (scanner, parser, resolver, emitter, ...) that raised it.
type Diagnostic struct {
	Level   Level
	Source  string
	Pos     tok.Position
	Module  string
	Message string
	// Snippet, when non-empty, is the offending source line; Format
	// renders it on a follow-up line with a caret at Pos.Column.
	Snippet string
}

// Format renders d as "source:line:column: level: module: message",
// 1-based per §6, with an optional caret line under a supplied snippet.
func (d Diagnostic) Format() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s:%d:%d: %s: %s: %s", d.Source, d.Pos.Line+1, d.Pos.Column+1, d.Level, d.Module, d.Message)
	if d.Snippet != "" {
		buf.WriteByte('\n')
		buf.WriteString(d.Snippet)
		buf.WriteByte('\n')
		for i := 0; i < d.Pos.Column; i++ {
			buf.WriteByte(' ')
		}
		buf.WriteByte('^')
	}
	return buf.String()
}

// Logger dispatches Diagnostics either straight to an underlying
// charmlog.Logger (the default, quiet-mode-aware) or into an in-memory
// buffer when collect-diagnostics is requested, per §6's "document-level
// has-parse-error flag and an associated captured diagnostic buffer".
type Logger struct {
	mu      sync.Mutex
	charm   *charmlog.Logger
	quiet   bool
	collect bool
	buf     []Diagnostic
	hasErr  bool
}

// Option configures a new Logger.
type Option func(*Logger)

// WithOutput redirects the underlying charmlog writer away from the
// default of os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.charm = charmlog.New(w) }
}

// WithQuiet suppresses dispatch to the underlying logger; diagnostics
// are still counted and, if collection is enabled, still buffered.
func WithQuiet(quiet bool) Option {
	return func(l *Logger) { l.quiet = quiet }
}

// WithCollect enables buffering of every reported Diagnostic for later
// retrieval via Collected, matching ParseConfig's collect-diagnostics
// flag.
func WithCollect(collect bool) Option {
	return func(l *Logger) { l.collect = collect }
}

// WithLevel sets the minimum level the underlying logger emits.
func WithLevel(min Level) Option {
	return func(l *Logger) { l.charm.SetLevel(min.charm()) }
}

// New builds a Logger. With no options it logs diagnostics at info level
// and above to stderr, drops debug-level ones, and does not buffer them.
func New(opts ...Option) *Logger {
	l := &Logger{charm: charmlog.New(os.Stderr)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Report dispatches one Diagnostic: unless quieted, it is logged through
// charmlog at the matching level with module/position as structured
// fields; if collection is enabled it is also appended to the buffer
// Collected returns. An error-level diagnostic latches HasError.
func (l *Logger) Report(d Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if d.Level == LevelError {
		l.hasErr = true
	}
	if l.collect {
		l.buf = append(l.buf, d)
	}
	if l.quiet {
		return
	}

	fields := []interface{}{
		"source", d.Source,
		"line", d.Pos.Line + 1,
		"column", d.Pos.Column + 1,
		"module", d.Module,
	}
	switch d.Level {
	case LevelDebug:
		l.charm.Debug(d.Message, fields...)
	case LevelWarn:
		l.charm.Warn(d.Message, fields...)
	case LevelError:
		l.charm.Error(d.Message, fields...)
	default:
		l.charm.Info(d.Message, fields...)
	}
}

// Debugf, Infof, Warnf, and Errorf are Report shorthands for callers that
// already have a formatted message rather than a structured Diagnostic.
func (l *Logger) Debugf(source string, pos tok.Position, module, format string, args ...interface{}) {
	l.Report(Diagnostic{Level: LevelDebug, Source: source, Pos: pos, Module: module, Message: fmt.Sprintf(format, args...)})
}

func (l *Logger) Infof(source string, pos tok.Position, module, format string, args ...interface{}) {
	l.Report(Diagnostic{Level: LevelInfo, Source: source, Pos: pos, Module: module, Message: fmt.Sprintf(format, args...)})
}

func (l *Logger) Warnf(source string, pos tok.Position, module, format string, args ...interface{}) {
	l.Report(Diagnostic{Level: LevelWarn, Source: source, Pos: pos, Module: module, Message: fmt.Sprintf(format, args...)})
}

func (l *Logger) Errorf(source string, pos tok.Position, module, format string, args ...interface{}) {
	l.Report(Diagnostic{Level: LevelError, Source: source, Pos: pos, Module: module, Message: fmt.Sprintf(format, args...)})
}

// Collected returns every Diagnostic reported so far, if collection was
// enabled; otherwise it returns nil.
func (l *Logger) Collected() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Diagnostic(nil), l.buf...)
}

// HasError reports whether any error-level diagnostic has been reported,
// the document-level "has-parse-error" flag of §6.
func (l *Logger) HasError() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasErr
}
