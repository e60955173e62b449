package yamlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBytesSimpleMapping(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("name: atom\ncount: 3\nok: true\n"), ParseConfig{})
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	require.True(t, doc.Root.IsMapping())

	require.Equal(t, "atom", doc.Root.Get("name").Value)
	require.Equal(t, IntTag, doc.Root.Get("count").Tag)
	require.Equal(t, BoolTag, doc.Root.Get("ok").Tag)
}

func TestParseBytesSequence(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("- one\n- two\n- three\n"), ParseConfig{})
	require.NoError(t, err)
	require.True(t, doc.Root.IsSequence())
	require.Equal(t, 3, doc.Root.Len())
	require.Equal(t, "two", doc.Root.At(1).Value)
}

func TestParseBytesNestedStructure(t *testing.T) {
	src := `
servers:
  - host: a.example.com
    port: 80
  - host: b.example.com
    port: 8080
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	servers := doc.Root.Get("servers")
	require.True(t, servers.IsSequence())
	require.Equal(t, 2, servers.Len())
	require.Equal(t, "a.example.com", servers.At(0).Get("host").Value)
	require.Equal(t, "8080", servers.At(1).Get("port").Value)
}

func TestParseBytesDuplicateKeyIsError(t *testing.T) {
	_, err := ParseBytes("t.yaml", []byte("a: 1\na: 2\n"), ParseConfig{})
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrSemantic, e.Category)
}

func TestParseAllBytesMultiDocument(t *testing.T) {
	src := "a: 1\n---\nb: 2\n"
	docs, err := ParseAllBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "1", docs[0].Root.Get("a").Value)
	require.Equal(t, "2", docs[1].Root.Get("b").Value)
}

func TestParseBytesAnchorDeclared(t *testing.T) {
	src := "base: &b\n  x: 1\nderived: *b\n"
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.Contains(t, doc.AnchorNames(), "b")
	require.NotNil(t, doc.Anchor("b"))

	derived := doc.Root.Get("derived")
	require.Equal(t, StyleAlias, derived.Style)
	require.Equal(t, "b", derived.Value)
}
