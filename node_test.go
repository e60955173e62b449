package yamlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeSequenceMutation(t *testing.T) {
	seq := NewSequence(StyleBlock)
	seq.Append(NewScalar(StrTag, "a", StylePlain))
	seq.Append(NewScalar(StrTag, "c", StylePlain))
	seq.InsertAt(1, NewScalar(StrTag, "b", StylePlain))

	require.Equal(t, 3, seq.Len())
	require.Equal(t, "a", seq.At(0).Value)
	require.Equal(t, "b", seq.At(1).Value)
	require.Equal(t, "c", seq.At(2).Value)

	seq.RemoveAt(0)
	require.Equal(t, 2, seq.Len())
	require.Equal(t, "b", seq.At(0).Value)
}

func TestNodeMappingGetAndSet(t *testing.T) {
	m := NewMapping(StyleBlock)
	m.AppendPair(NewScalar(StrTag, "name", StylePlain), NewScalar(StrTag, "atom", StylePlain))
	m.SetPair(NewScalar(StrTag, "size", StylePlain), NewScalar(IntTag, "1", StylePlain))

	require.Equal(t, "atom", m.Get("name").Value)
	require.Equal(t, "1", m.Get("size").Value)

	m.SetPair(NewScalar(StrTag, "size", StylePlain), NewScalar(IntTag, "2", StylePlain))
	require.Equal(t, 2, m.Len())
	require.Equal(t, "2", m.Get("size").Value)

	require.True(t, m.RemoveKey("name"))
	require.Nil(t, m.Get("name"))
	require.False(t, m.RemoveKey("name"))
}

func TestNodeCopyIsDeep(t *testing.T) {
	orig := NewMapping(StyleBlock)
	child := NewSequence(StyleFlow)
	child.Append(NewScalar(StrTag, "x", StylePlain))
	orig.AppendPair(NewScalar(StrTag, "items", StylePlain), child)

	dup := orig.Copy()
	dup.Get("items").Append(NewScalar(StrTag, "y", StylePlain))

	require.Equal(t, 1, orig.Get("items").Len())
	require.Equal(t, 2, dup.Get("items").Len())
}

func TestEqualScalarsAndCollections(t *testing.T) {
	a := NewSequence(StyleBlock)
	a.Append(NewScalar(IntTag, "1", StylePlain))
	a.Append(NewScalar(IntTag, "2", StylePlain))

	b := NewSequence(StyleFlow)
	b.Append(NewScalar(IntTag, "1", StylePlain))
	b.Append(NewScalar(IntTag, "2", StylePlain))

	require.True(t, Equal(a, b))

	b.Append(NewScalar(IntTag, "3", StylePlain))
	require.False(t, Equal(a, b))
}

func TestEqualMappingIgnoresOrder(t *testing.T) {
	a := NewMapping(StyleBlock)
	a.AppendPair(NewScalar(StrTag, "a", StylePlain), NewScalar(IntTag, "1", StylePlain))
	a.AppendPair(NewScalar(StrTag, "b", StylePlain), NewScalar(IntTag, "2", StylePlain))

	b := NewMapping(StyleBlock)
	b.AppendPair(NewScalar(StrTag, "b", StylePlain), NewScalar(IntTag, "2", StylePlain))
	b.AppendPair(NewScalar(StrTag, "a", StylePlain), NewScalar(IntTag, "1", StylePlain))

	require.True(t, Equal(a, b))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "scalar", ScalarNode.String())
	require.Equal(t, "sequence", SequenceNode.String())
	require.Equal(t, "mapping", MappingNode.String())
}
