package yamlkit

import (
	"fmt"

	tok "github.com/atomkit/yamlkit/internal/token"
)

// ErrorCategory classifies a Error by the phase of processing that
// raised it.
type ErrorCategory int

const (
	// ErrInput covers I/O failure, non-UTF-8 bytes, and truncated mmap.
	ErrInput ErrorCategory = iota
	// ErrLexical covers bad escapes, unterminated quoted scalars, bad
	// block-scalar headers, malformed tag URIs, and invalid directives.
	ErrLexical
	// ErrGrammatical covers unexpected tokens, unmatched flow
	// terminators, and the other grammar-level failures.
	ErrGrammatical
	// ErrSemantic covers undefined tag handles, duplicate mapping keys,
	// undefined aliases, and invalid merge values.
	ErrSemantic
	// ErrEmission covers sink failures and style/content conflicts
	// during emission.
	ErrEmission
	// ErrAPIMisuse covers nil arguments and cross-document mutation
	// against an unowned node.
	ErrAPIMisuse
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrInput:
		return "input"
	case ErrLexical:
		return "lexical"
	case ErrGrammatical:
		return "grammatical"
	case ErrSemantic:
		return "semantic"
	case ErrEmission:
		return "emission"
	case ErrAPIMisuse:
		return "api misuse"
	}
	return "unknown"
}

// Error is the error type every yamlkit entry point returns. It carries
// the source position (when one applies) so callers and the diag
// package can render "source:line:column: ..." without re-deriving it.
type Error struct {
	Category ErrorCategory
	Source   string
	Pos      tok.Position
	Message  string
	Err      error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("yamlkit: %s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Source, e.Pos.Line+1, e.Pos.Column+1, e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(cat ErrorCategory, source string, pos tok.Position, format string, args ...interface{}) *Error {
	return &Error{Category: cat, Source: source, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func wrapError(cat ErrorCategory, source string, pos tok.Position, err error) *Error {
	return &Error{Category: cat, Source: source, Pos: pos, Message: err.Error(), Err: err}
}
