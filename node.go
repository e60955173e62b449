package yamlkit

import (
	"sort"

	tok "github.com/atomkit/yamlkit/internal/token"
)

// Kind discriminates the three node variants YAML content builds from.
type Kind int

const (
	ScalarNode Kind = iota
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	}
	return "unknown kind"
}

// Style records how a node was written, or how it should be written on
// re-emission: a scalar quoting style, an alias reference, or a
// collection's flow-vs-block layout.
type Style int

const (
	StyleAny Style = iota
	StylePlain
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleLiteral
	StyleFolded
	StyleAlias
	StyleFlow
	StyleBlock
)

// NodePair is one key/value entry of a mapping, in declaration order.
// Mappings keep an ordered list of these rather than flattening keys and
// values into a single child slice, so key and value are never
// ambiguous by position alone.
type NodePair struct {
	Key   *Node
	Value *Node
}

// Node is a scalar, sequence, or mapping in a parsed (or hand-built)
// document tree. Only the fields meaningful to Kind are populated:
// Value for a scalar, Items for a sequence, Pairs for a mapping.
type Node struct {
	Kind  Kind
	Style Style

	// Tag is the resolved tag, e.g. "!!str" or a custom "!my-type". Empty
	// until resolution assigns the schema default for an implicit node.
	Tag         string
	TagExplicit bool

	// Anchor is this node's declared anchor name, or "" if none.
	Anchor string

	// Value is the decoded scalar content (escapes processed, block
	// scalars folded/chomped). Meaningful only when Kind == ScalarNode;
	// for an alias-styled scalar it holds the referenced anchor's name
	// until Resolve replaces the node with a copy of its target.
	Value string

	Items []*Node
	Pairs []NodePair

	HeadComment string
	LineComment string
	FootComment string

	parent *Node
	pos    tok.Position
}

// NewScalar returns a detached scalar node.
func NewScalar(tag, value string, style Style) *Node {
	return &Node{Kind: ScalarNode, Tag: tag, Value: value, Style: style}
}

// NewSequence returns a detached, empty sequence node.
func NewSequence(style Style) *Node {
	return &Node{Kind: SequenceNode, Tag: SeqTag, Style: style}
}

// NewMapping returns a detached, empty mapping node.
func NewMapping(style Style) *Node {
	return &Node{Kind: MappingNode, Tag: MapTag, Style: style}
}

func (n *Node) IsScalar() bool   { return n.Kind == ScalarNode }
func (n *Node) IsSequence() bool { return n.Kind == SequenceNode }
func (n *Node) IsMapping() bool  { return n.Kind == MappingNode }

// Parent returns the node's parent in its owning document, or nil for a
// root or a detached node.
func (n *Node) Parent() *Node { return n.parent }

// Position returns the node's position in its source, for diagnostics
// built from a node rather than a live parse error.
func (n *Node) Position() tok.Position { return n.pos }

// Len returns the number of sequence items or mapping pairs; it is 0 for
// a scalar.
func (n *Node) Len() int {
	switch n.Kind {
	case SequenceNode:
		return len(n.Items)
	case MappingNode:
		return len(n.Pairs)
	}
	return 0
}

// At returns the i'th sequence item. It panics on an out-of-range index
// or a non-sequence node, matching the get-by-index contract of §6.
func (n *Node) At(i int) *Node {
	if n.Kind != SequenceNode {
		panic("yamlkit: At called on a non-sequence node")
	}
	return n.Items[i]
}

// Append adds value as the last sequence item.
func (n *Node) Append(value *Node) {
	if n.Kind != SequenceNode {
		panic("yamlkit: Append called on a non-sequence node")
	}
	value.parent = n
	n.Items = append(n.Items, value)
}

// Prepend adds value as the first sequence item.
func (n *Node) Prepend(value *Node) {
	if n.Kind != SequenceNode {
		panic("yamlkit: Prepend called on a non-sequence node")
	}
	value.parent = n
	n.Items = append([]*Node{value}, n.Items...)
}

// InsertAt inserts value as sequence item i, shifting later items right.
func (n *Node) InsertAt(i int, value *Node) {
	if n.Kind != SequenceNode {
		panic("yamlkit: InsertAt called on a non-sequence node")
	}
	value.parent = n
	n.Items = append(n.Items, nil)
	copy(n.Items[i+1:], n.Items[i:])
	n.Items[i] = value
}

// RemoveAt removes sequence item i.
func (n *Node) RemoveAt(i int) {
	if n.Kind != SequenceNode {
		panic("yamlkit: RemoveAt called on a non-sequence node")
	}
	n.Items = append(n.Items[:i], n.Items[i+1:]...)
}

// Get looks up a mapping value by a plain string key, using semantic
// scalar equality (§4.7). It returns nil if the key is absent or n is
// not a mapping.
func (n *Node) Get(key string) *Node {
	if n.Kind != MappingNode {
		return nil
	}
	for _, p := range n.Pairs {
		if p.Key.Kind == ScalarNode && p.Key.Value == key {
			return p.Value
		}
	}
	return nil
}

// PairAt returns the i'th mapping pair.
func (n *Node) PairAt(i int) NodePair {
	if n.Kind != MappingNode {
		panic("yamlkit: PairAt called on a non-mapping node")
	}
	return n.Pairs[i]
}

// SetPair appends key/value as a new mapping pair, or overwrites the
// value of an existing pair whose key compares equal, per the semantics
// §4.5 leaves to the caller's append API.
func (n *Node) SetPair(key, value *Node) {
	if n.Kind != MappingNode {
		panic("yamlkit: SetPair called on a non-mapping node")
	}
	for i := range n.Pairs {
		if Equal(n.Pairs[i].Key, key) {
			value.parent = n
			n.Pairs[i].Value = value
			return
		}
	}
	n.AppendPair(key, value)
}

// AppendPair adds key/value as the last mapping pair without checking
// for a duplicate key; the document builder runs its own duplicate-key
// check before calling it.
func (n *Node) AppendPair(key, value *Node) {
	if n.Kind != MappingNode {
		panic("yamlkit: AppendPair called on a non-mapping node")
	}
	key.parent = n
	value.parent = n
	n.Pairs = append(n.Pairs, NodePair{Key: key, Value: value})
}

// PrependPair adds key/value as the first mapping pair.
func (n *Node) PrependPair(key, value *Node) {
	if n.Kind != MappingNode {
		panic("yamlkit: PrependPair called on a non-mapping node")
	}
	key.parent = n
	value.parent = n
	n.Pairs = append([]NodePair{{Key: key, Value: value}}, n.Pairs...)
}

// RemoveKey removes the first pair whose key compares semantically equal
// to key, returning whether one was found.
func (n *Node) RemoveKey(key string) bool {
	if n.Kind != MappingNode {
		return false
	}
	for i, p := range n.Pairs {
		if p.Key.Kind == ScalarNode && p.Key.Value == key {
			n.Pairs = append(n.Pairs[:i], n.Pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Copy returns a deep structural copy of n, detached from any parent.
// Token backings are not duplicated since copied nodes no longer carry
// one; the copy is decoded-value-only, matching the resolver's alias
// and merge-key expansion (§4.6), which is the only place deep copies
// are required.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:        n.Kind,
		Style:       n.Style,
		Tag:         n.Tag,
		TagExplicit: n.TagExplicit,
		Value:       n.Value,
		HeadComment: n.HeadComment,
		LineComment: n.LineComment,
		FootComment: n.FootComment,
		pos:         n.pos,
	}
	switch n.Kind {
	case SequenceNode:
		c.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			c.Items[i] = item.Copy()
			c.Items[i].parent = c
		}
	case MappingNode:
		c.Pairs = make([]NodePair, len(n.Pairs))
		for i, p := range n.Pairs {
			k, v := p.Key.Copy(), p.Value.Copy()
			k.parent, v.parent = c, c
			c.Pairs[i] = NodePair{Key: k, Value: v}
		}
	}
	return c
}

// Equal reports whether a and b are semantically equal per §4.7: scalars
// compare by decoded value, sequences element-wise, and mappings after
// sorting both sides with the default key comparator.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if isNullOrEmpty(a) && isNullOrEmpty(b) {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ScalarNode:
		return a.Value == b.Value
	case SequenceNode:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case MappingNode:
		if len(a.Pairs) != len(b.Pairs) {
			return false
		}
		ap := sortedPairs(a.Pairs)
		bp := sortedPairs(b.Pairs)
		for i := range ap {
			if !Equal(ap[i].Key, bp[i].Key) || !Equal(ap[i].Value, bp[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func isNullOrEmpty(n *Node) bool {
	if n.Kind != ScalarNode {
		return false
	}
	return n.Tag == NullTag || (n.Tag == "" && n.Value == "")
}

// keyRank orders the default mapping comparator: mapping-keys first,
// then sequence-keys, then scalar-keys lexicographically by decoded
// bytes; ties (including keys of equal kind with equal text, or any
// non-scalar kind) break by original insertion index, which the caller
// supplies as a stable sort.
func keyRank(k *Node) int {
	switch k.Kind {
	case MappingNode:
		return 0
	case SequenceNode:
		return 1
	default:
		return 2
	}
}

func sortedPairs(pairs []NodePair) []NodePair {
	out := append([]NodePair(nil), pairs...)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].Key, out[j].Key
		ri, rj := keyRank(ki), keyRank(kj)
		if ri != rj {
			return ri < rj
		}
		if ri == 2 {
			return ki.Value < kj.Value
		}
		return false
	})
	return out
}
