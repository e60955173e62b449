package yamlkit

import "github.com/atomkit/yamlkit/internal/resolve"

// Core schema tag shorthands, re-exported from the resolver so callers
// comparing a Node's Tag never need to import internal/resolve.
const (
	NullTag      = resolve.NullTag
	BoolTag      = resolve.BoolTag
	StrTag       = resolve.StrTag
	IntTag       = resolve.IntTag
	FloatTag     = resolve.FloatTag
	TimestampTag = resolve.TimestampTag
	SeqTag       = resolve.SeqTag
	MapTag       = resolve.MapTag
	BinaryTag    = resolve.BinaryTag
	MergeTag     = resolve.MergeTag
)

// ShortTag rewrites a tag:yaml.org,2002:x tag to its !!x shorthand, and
// leaves any other tag unchanged.
func ShortTag(tag string) string { return resolve.ShortTag(tag) }

// LongTag rewrites a !!x shorthand to its tag:yaml.org,2002:x form, and
// leaves any other tag unchanged.
func LongTag(tag string) string { return resolve.LongTag(tag) }
