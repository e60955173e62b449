package yamlkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitDocumentRoundTripsMapping(t *testing.T) {
	src := "name: atom\ncount: 3\nnested:\n  a: 1\n  b: 2\n"
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{})
	require.NoError(t, err)

	doc2, err := ParseString("t2.yaml", out, ParseConfig{})
	require.NoError(t, err)

	require.True(t, Equal(doc.Root, doc2.Root))
}

func TestEmitDocumentRoundTripsSequence(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("- one\n- two\n- three\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{})
	require.NoError(t, err)

	doc2, err := ParseString("t2.yaml", out, ParseConfig{})
	require.NoError(t, err)
	require.True(t, Equal(doc.Root, doc2.Root))
}

func TestEmitColorizedContainsEscapes(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("ok: true\nname: atom\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{Mode: ModeColorized})
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "\x1b["))
}

func TestEmitNodeHandlesBareScalar(t *testing.T) {
	out, err := EmitString(&Document{Root: NewScalar(StrTag, "hello", StylePlain)}, EmitConfig{})
	require.NoError(t, err)
	require.Contains(t, out, "hello")
}

func TestEmitDocStartEndMarksCanBeForced(t *testing.T) {
	doc := &Document{Root: NewScalar(StrTag, "hello", StylePlain)}

	out, err := EmitString(doc, EmitConfig{DocStartMark: true, DocEndMark: true})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "---"))
	require.Contains(t, out, "...")
}

func TestEmitBlockOnlyForcesBlockAndPlainStyle(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte(`items: [1, 2, "three"]`+"\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{Mode: ModeBlockOnly})
	require.NoError(t, err)
	require.NotContains(t, out, "[")
	require.NotContains(t, out, `"three"`)
	require.Contains(t, out, "- 1\n")
}

func TestEmitFlowOnlyForcesFlowStyle(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("a: 1\nb:\n  - 2\n  - 3\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{Mode: ModeFlowOnly})
	require.NoError(t, err)
	require.Contains(t, out, "{")
	require.Contains(t, out, "[2, 3]")
}

func TestEmitSortKeysReordersMappingPairs(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("zebra: 1\napple: 2\nmango: 3\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{SortKeys: true})
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "apple"), strings.Index(out, "mango"))
	require.Less(t, strings.Index(out, "mango"), strings.Index(out, "zebra"))
}

func TestEmitSinkReceivesWriteKindTaggedChunks(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("name: atom\ncount: 3\n"), ParseConfig{})
	require.NoError(t, err)

	var sawKey, sawNumber bool
	var rebuilt strings.Builder
	cfg := EmitConfig{Sink: func(kind WriteKind, p []byte) error {
		switch kind {
		case WriteKindKey:
			sawKey = true
		case WriteKindNumber:
			sawNumber = true
		}
		rebuilt.Write(p)
		return nil
	}}

	var out strings.Builder
	require.NoError(t, EmitDocument(&out, doc, cfg))
	require.True(t, sawKey)
	require.True(t, sawNumber)
	require.Equal(t, "name: atom\ncount: 3\n", rebuilt.String())
}
