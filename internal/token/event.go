package token

import "fmt"

// EventType identifies one of the flat stream of events the parser
// produces; see spec §3 Event.
type EventType int8

const (
	EventNone EventType = iota

	EventStreamStart
	EventStreamEnd
	EventDocumentStart
	EventDocumentEnd
	EventAlias
	EventScalar
	EventSequenceStart
	EventSequenceEnd
	EventMappingStart
	EventMappingEnd
	EventTailComment
)

var eventNames = [...]string{
	EventNone:          "none",
	EventStreamStart:   "stream start",
	EventStreamEnd:     "stream end",
	EventDocumentStart: "document start",
	EventDocumentEnd:   "document end",
	EventAlias:         "alias",
	EventScalar:        "scalar",
	EventSequenceStart: "sequence start",
	EventSequenceEnd:   "sequence end",
	EventMappingStart:  "mapping start",
	EventMappingEnd:    "mapping end",
	EventTailComment:   "tail comment",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventNames[e]
}

// Event is one item of the parser's flat output stream. Its lifetime is
// bounded by the parsing call that produced it, except for the byte
// slices it shares with the tokens it was built from.
type Event struct {
	Type EventType

	Start_mark, End_mark Position

	Encoding Encoding

	Version_directive *VersionDirective
	Tag_directives    []TagDirective

	Head_comment []byte
	Line_comment []byte
	Foot_comment []byte
	Tail_comment []byte

	Anchor []byte
	Tag    []byte
	Value  []byte

	// Implicit records whether a document boundary was synthesised
	// (DocumentStart/End), or a tag was omitted and resolved implicitly
	// (Scalar/SequenceStart/MappingStart).
	Implicit bool

	// Quoted_implicit additionally records, for a SCALAR event, whether the
	// tag would still be considered implicit under a non-plain style.
	Quoted_implicit bool

	Style Style
}

func (e *Event) Scalar_style() ScalarStyle     { return ScalarStyle(e.Style) }
func (e *Event) Sequence_style() SequenceStyle { return SequenceStyle(e.Style) }
func (e *Event) Mapping_style() MappingStyle   { return MappingStyle(e.Style) }

// Core schema tags, in their full tag:yaml.org,2002: form.
const (
	TagNull      = "tag:yaml.org,2002:null"
	TagBool      = "tag:yaml.org,2002:bool"
	TagStr       = "tag:yaml.org,2002:str"
	TagInt       = "tag:yaml.org,2002:int"
	TagFloat     = "tag:yaml.org,2002:float"
	TagTimestamp = "tag:yaml.org,2002:timestamp"

	TagSeq = "tag:yaml.org,2002:seq"
	TagMap = "tag:yaml.org,2002:map"

	TagBinary = "tag:yaml.org,2002:binary"
	TagMerge  = "tag:yaml.org,2002:merge"

	DefaultScalarTag   = TagStr
	DefaultSequenceTag = TagSeq
	DefaultMappingTag  = TagMap
)

// DefaultTagDirectives are the implicit "!" -> "!" and "!!" ->
// "tag:yaml.org,2002:" handles present even with no %TAG directive.
var DefaultTagDirectives = []TagDirective{
	{Handle: []byte("!"), Prefix: []byte("!")},
	{Handle: []byte("!!"), Prefix: []byte("tag:yaml.org,2002:")},
}
