// Package token holds the lexical types shared by the scanner, the
// parser, and the emitter: token and event tags, encodings, scalar
// styles, and the position type used for diagnostics.
package token

import "fmt"

// Encoding identifies the byte-level encoding of a stream.
type Encoding int

const (
	EncodingAny Encoding = iota // let the scanner detect the encoding
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
)

// Break identifies a preferred line-break style for emission.
type Break int

const (
	BreakAny Break = iota
	BreakCR
	BreakLF
	BreakCRLF
)

// ErrorKind classifies which subsystem raised a diagnostic.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrReader
	ErrScanner
	ErrParser
	ErrWriter
	ErrEmitter
)

// Position locates a byte offset in its source by line and column
// (0-based internally; the diagnostic formatter renders 1-based).
type Position struct {
	Index  int
	Line   int
	Column int
}

// Style is the common representation backing ScalarStyle, SequenceStyle,
// and MappingStyle — each collection kind has its own named type so a
// caller can't accidentally compare a sequence style against a mapping
// style, but all three share this underlying width.
type Style int8

// ScalarStyle records how a scalar token/node was (or should be) quoted.
type ScalarStyle Style

const (
	ScalarAny ScalarStyle = 0

	ScalarPlain ScalarStyle = 1 << iota
	ScalarSingleQuoted
	ScalarDoubleQuoted
	ScalarLiteral
	ScalarFolded
)

func (s ScalarStyle) String() string {
	switch s {
	case ScalarAny:
		return "any"
	case ScalarPlain:
		return "plain"
	case ScalarSingleQuoted:
		return "single-quoted"
	case ScalarDoubleQuoted:
		return "double-quoted"
	case ScalarLiteral:
		return "literal"
	case ScalarFolded:
		return "folded"
	}
	return "unknown scalar style"
}

// SequenceStyle records block vs flow for a sequence.
type SequenceStyle Style

const (
	SequenceAny SequenceStyle = iota
	SequenceBlock
	SequenceFlow
)

// MappingStyle records block vs flow for a mapping.
type MappingStyle Style

const (
	MappingAny MappingStyle = iota
	MappingBlock
	MappingFlow
)

// Kind identifies a lexical token produced by the scanner.
type Kind int

const (
	KindNone Kind = iota

	KindStreamStart
	KindStreamEnd

	KindVersionDirective
	KindTagDirective
	KindDocumentStart
	KindDocumentEnd

	KindBlockSequenceStart
	KindBlockMappingStart
	KindBlockEnd

	KindFlowSequenceStart
	KindFlowSequenceEnd
	KindFlowMappingStart
	KindFlowMappingEnd

	KindBlockEntry
	KindFlowEntry
	KindKey
	KindValue

	KindAlias
	KindAnchor
	KindTag
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NO_TOKEN"
	case KindStreamStart:
		return "STREAM_START_TOKEN"
	case KindStreamEnd:
		return "STREAM_END_TOKEN"
	case KindVersionDirective:
		return "VERSION_DIRECTIVE_TOKEN"
	case KindTagDirective:
		return "TAG_DIRECTIVE_TOKEN"
	case KindDocumentStart:
		return "DOCUMENT_START_TOKEN"
	case KindDocumentEnd:
		return "DOCUMENT_END_TOKEN"
	case KindBlockSequenceStart:
		return "BLOCK_SEQUENCE_START_TOKEN"
	case KindBlockMappingStart:
		return "BLOCK_MAPPING_START_TOKEN"
	case KindBlockEnd:
		return "BLOCK_END_TOKEN"
	case KindFlowSequenceStart:
		return "FLOW_SEQUENCE_START_TOKEN"
	case KindFlowSequenceEnd:
		return "FLOW_SEQUENCE_END_TOKEN"
	case KindFlowMappingStart:
		return "FLOW_MAPPING_START_TOKEN"
	case KindFlowMappingEnd:
		return "FLOW_MAPPING_END_TOKEN"
	case KindBlockEntry:
		return "BLOCK_ENTRY_TOKEN"
	case KindFlowEntry:
		return "FLOW_ENTRY_TOKEN"
	case KindKey:
		return "KEY_TOKEN"
	case KindValue:
		return "VALUE_TOKEN"
	case KindAlias:
		return "ALIAS_TOKEN"
	case KindAnchor:
		return "ANCHOR_TOKEN"
	case KindTag:
		return "TAG_TOKEN"
	case KindScalar:
		return "SCALAR_TOKEN"
	}
	return "<unknown token>"
}

// Token is a single lexical unit produced by the scanner. Its Value (and
// Suffix/Prefix for tag-shaped tokens) are byte slices the scanner
// assembles from its read buffer; they are copies and do not reference
// the bytes of an internal/input Input.
// Tokens are shared by reference between the scanner queue, the events the
// parser builds from them, and any node that keeps one alive, which is why
// every field here is immutable after construction.
type Token struct {
	Type Kind

	Start_mark, End_mark Position

	Encoding Encoding

	// Value holds the alias/anchor/scalar text, or the tag/tag-directive
	// handle.
	Value []byte

	// Suffix holds a tag token's URI suffix.
	Suffix []byte

	// Prefix holds a tag-directive's URI prefix.
	Prefix []byte

	Style ScalarStyle

	Major, Minor int8

	decoded     string
	decodedOnce bool
}

// TagDirective is a single %TAG handle → prefix declaration.
type TagDirective struct {
	Handle []byte
	Prefix []byte
}

// VersionDirective is a %YAML major.minor declaration.
type VersionDirective struct {
	Major int8
	Minor int8
}

// SimpleKey records a candidate position for an implicit mapping key. The
// scanner keeps one of these per open indentation/flow level; it never
// buffers the candidate's text; TokenNumber only indexes back into the
// pending token queue, which is how §4.3's "no artificial length limit"
// is achieved — a 10,000-byte plain scalar costs no more to track than a
// one-byte one.
type SimpleKey struct {
	Possible     bool
	Required     bool
	Token_number int
	Mark         Position
}

// Comment is a folded run of '#' comment text attached to a scan
// position, before the parser has decided whether it is a head, line, or
// foot comment of some node.
type Comment struct {
	Scan_mark  Position
	Token_mark Position
	Start_mark Position
	End_mark   Position

	Head []byte
	Line []byte
	Foot []byte
}

func (e ErrorKind) String() string {
	switch e {
	case ErrNone:
		return "none"
	case ErrReader:
		return "reader"
	case ErrScanner:
		return "scanner"
	case ErrParser:
		return "parser"
	case ErrWriter:
		return "writer"
	case ErrEmitter:
		return "emitter"
	}
	return fmt.Sprintf("error kind %d", e)
}
