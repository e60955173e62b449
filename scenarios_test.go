package yamlkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// These mirror the concrete walkthroughs enumerated alongside the
// package's invariants: a tagged scalar next to an anchored mapping, a
// nested flow sequence round-tripped byte-exact, and a plain scalar
// implicit key far past any fixed-width buffer.

func TestScenarioInvoiceAnchorAndExplicitTag(t *testing.T) {
	src := "invoice: 34843\ndate   : !!str 2001-01-23\nbill-to: &id001\n    given  : Chris\n    family : Dumars\n"
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	require.Equal(t, "34843", doc.Root.Get("invoice").Value)

	date := doc.Root.Get("date")
	require.Equal(t, StrTag, date.Tag)

	billTo := doc.Root.Get("bill-to")
	require.True(t, billTo.IsMapping())
	require.Equal(t, "Chris", billTo.Get("given").Value)
	require.Equal(t, "Dumars", billTo.Get("family").Value)

	anchored := doc.Anchor("id001")
	require.NotNil(t, anchored)
	require.True(t, Equal(anchored, billTo))
}

func TestScenarioNestedFlowSequenceRoundTripsOneline(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("[1, 2, 3, [4, 5]]\n"), ParseConfig{})
	require.NoError(t, err)

	require.True(t, doc.Root.IsSequence())
	require.Equal(t, 4, doc.Root.Len())
	inner := doc.Root.At(3)
	require.True(t, inner.IsSequence())
	require.Equal(t, "4", inner.At(0).Value)
	require.Equal(t, "5", inner.At(1).Value)

	out, err := EmitString(doc, EmitConfig{Mode: ModeFlowOneline})
	require.NoError(t, err)
	require.Equal(t, `[1, 2, 3, [4, 5]]`, out)
}

func TestScenarioLongImplicitKeyHasNoLengthLimit(t *testing.T) {
	key := strings.Repeat("x", 2000)
	src := key + ": value\n"

	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Root.Len())
	require.Equal(t, "value", doc.Root.Get(key).Value)
}
