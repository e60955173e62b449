package yamlkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// roundTripSamples covers the document shapes the other package tests
// exercise individually: scalars of every core schema tag, nested
// block and flow collections, and documents with anchors/aliases
// already resolved away.
var roundTripSamples = []string{
	"a: 1\nb: 2.5\nc: true\nd: false\ne: ~\nf: hello\n",
	"- 1\n- 2\n- 3\n",
	"nested:\n  flow: {a: 1, b: [1, 2, 3]}\n  block:\n    - x\n    - y\n",
	"multiline: |\n  line one\n  line two\n",
	"folded: >\n  line one\n  line two\n",
	"quoted: \"hello \\\"world\\\"\"\nsingle: 'it''s fine'\n",
}

func TestRoundTripParseEmitParse(t *testing.T) {
	for _, src := range roundTripSamples {
		doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
		require.NoError(t, err, "parsing %q", src)

		out, err := EmitString(doc, EmitConfig{})
		require.NoError(t, err, "emitting %q", src)

		doc2, err := ParseString("t2.yaml", out, ParseConfig{})
		require.NoError(t, err, "reparsing emitted output of %q:\n%s", src, out)

		require.True(t, Equal(doc.Root, doc2.Root), "round trip changed semantics for %q:\ngot:\n%s", src, out)

		want, err := doc.Root.Interface()
		require.NoError(t, err)
		got, err := doc2.Root.Interface()
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(want, got), "decoded value diverged for %q", src)
	}
}

func TestRoundTripSurvivesAnchorResolution(t *testing.T) {
	src := "base: &b\n  x: 1\nderived: *b\n"
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.NoError(t, doc.Resolve())

	out, err := EmitString(doc, EmitConfig{})
	require.NoError(t, err)

	doc2, err := ParseString("t2.yaml", out, ParseConfig{})
	require.NoError(t, err)
	require.True(t, Equal(doc.Root, doc2.Root))
}
