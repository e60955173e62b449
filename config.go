package yamlkit

import (
	"github.com/atomkit/yamlkit/internal/diag"
	"github.com/atomkit/yamlkit/internal/emitter"
	tok "github.com/atomkit/yamlkit/internal/token"
)

// ColorMode selects when the colorised emitter mode writes ANSI escapes.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorNone
	ColorForce
)

// ParseConfig groups the parser's optional behaviors: diagnostic
// routing, a colon-separated search path, and the flag group §6 describes (quiet, collect
// diagnostics, per-module debug, resolve-on-build, disable-mmap,
// disable-recycling).
type ParseConfig struct {
	// SearchPath holds a colon-separated list of directories. No parsing
	// entry point reads it; setting it has no effect.
	SearchPath string

	// Quiet suppresses dispatch of diagnostics to the default sink; they
	// are still latched and, if Collect is set, still buffered.
	Quiet bool

	// Collect retains every diagnostic for retrieval from the returned
	// Document rather than only the first stream error.
	Collect bool

	Color ColorMode

	// Debug enables per-module trace diagnostics (scanner, parser,
	// resolver) at or above DebugLevel.
	Debug      bool
	DebugLevel diag.Level

	// ResolveOnBuild runs Resolve automatically once a Document's tree
	// is built, instead of requiring an explicit call.
	ResolveOnBuild bool

	// DisableMmap forces Input.Open to always use a buffered read, even
	// for file paths that could otherwise be memory-mapped.
	DisableMmap bool

	// DisableRecycling is not read by any parsing entry point; setting
	// it has no effect.
	DisableRecycling bool

	// Logger receives every diagnostic raised while parsing. If nil, a
	// Logger is constructed from the other fields in this struct.
	Logger *diag.Logger
}

func (c ParseConfig) logger() *diag.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	opts := []diag.Option{diag.WithQuiet(c.Quiet), diag.WithCollect(c.Collect)}
	if c.Debug {
		opts = append(opts, diag.WithLevel(c.DebugLevel))
	}
	return diag.New(opts...)
}

// EmitMode selects the emitter's output shape.
type EmitMode int

const (
	// ModeYAML emits standard block/flow YAML 1.3, honoring each node's
	// own style hint (block vs flow, plain vs quoted vs literal/folded).
	ModeYAML EmitMode = iota
	// ModeOriginal is an alias for ModeYAML: every node renders in the
	// style it was built or parsed with, rather than a style forced
	// uniformly across the document.
	ModeOriginal
	// ModeColorized emits YAML 1.3 styled with ANSI escapes by node
	// kind.
	ModeColorized
	// ModeBlockOnly forces every collection to block style, ignoring
	// flow style hints. Literal and folded scalars are written literal
	// and every other scalar is requested as plain; a scalar whose
	// content cannot be written plain still falls back to single- or
	// double-quoted style.
	ModeBlockOnly
	// ModeFlowOnly forces every collection to flow style, ignoring
	// block style hints, while preserving normal line wrapping.
	ModeFlowOnly
	// ModeFlowOneline is ModeFlowOnly collapsed onto a single line: no
	// line wrapping, no document markers, no trailing newline.
	ModeFlowOneline
	// ModeJSON emits the JSON-compatible flow subset, quoting every
	// scalar.
	ModeJSON
	// ModeJSONTypePreserving emits flow JSON but leaves bool/null/
	// numeric scalars unquoted when their decoded type round-trips.
	ModeJSONTypePreserving
	// ModeJSONOneline is ModeJSON with block structure collapsed onto a
	// single line (no implicit document separators or trailing
	// newline).
	ModeJSONOneline
)

// WriteKind classifies a chunk of bytes an emitter hands to a Sink, so
// a sink can colorize or filter without re-parsing rendered text.
type WriteKind = emitter.WriteKind

const (
	WriteKindPlain   = emitter.KindPlain
	WriteKindKey     = emitter.KindKey
	WriteKindString  = emitter.KindString
	WriteKindNumber  = emitter.KindNumber
	WriteKindBool    = emitter.KindBool
	WriteKindNull    = emitter.KindNull
	WriteKindAnchor  = emitter.KindAnchor
	WriteKindTag     = emitter.KindTag
	WriteKindComment = emitter.KindComment
)

// EmitConfig groups the emitter's optional behaviors.
type EmitConfig struct {
	Mode EmitMode

	// Indent is the number of spaces used per block-indentation level.
	// Zero selects the emitter's compiled-in default (2).
	Indent int

	// Width is the preferred output line width for plain/folded
	// scalars. Zero selects the emitter's default; negative disables
	// wrapping.
	Width int

	Color ColorMode

	// DocStartMark forces a leading "---" document-start marker even
	// when it would otherwise be implicit.
	DocStartMark bool

	// DocEndMark forces a trailing "..." document-end marker even when
	// it would otherwise be implicit.
	DocEndMark bool

	// VersionDirective, if set, emits a "%YAML" directive ahead of the
	// document-start marker (which DocStartMark or this field then
	// forces to explicit).
	VersionDirective *tok.VersionDirective

	// TagDirectives, if non-nil, overrides the document's own
	// TagDirectives for this emission.
	TagDirectives []tok.TagDirective

	// SortKeys reorders every mapping's pairs by the default key
	// comparator (mappings, then sequences, then scalars lexically)
	// before emission, instead of preserving insertion order.
	SortKeys bool

	// Sink, if set, receives emitted bytes incrementally, tagged by
	// WriteKind, instead of the caller's io.Writer being written
	// directly. ModeColorized uses the same WriteKind tagging internally
	// to style each chunk as it's produced.
	Sink func(WriteKind, []byte) error
}
