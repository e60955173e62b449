package yamlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitJSONQuotesEverything(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("count: 3\nok: true\nname: atom\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{Mode: ModeJSON})
	require.NoError(t, err)
	require.Contains(t, out, `"count": "3"`)
	require.Contains(t, out, `"ok": "true"`)
}

func TestEmitJSONTypePreservingLeavesTypesUnquoted(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("count: 3\nok: true\nname: atom\ntag: ~\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{Mode: ModeJSONTypePreserving})
	require.NoError(t, err)
	require.Contains(t, out, `"count": 3`)
	require.Contains(t, out, `"ok": true`)
	require.Contains(t, out, `"name": "atom"`)
	require.Contains(t, out, `"tag": null`)
}

func TestEmitJSONOnelineHasNoNewlines(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("a: 1\nb:\n  - 1\n  - 2\n"), ParseConfig{})
	require.NoError(t, err)

	out, err := EmitString(doc, EmitConfig{Mode: ModeJSONOneline})
	require.NoError(t, err)
	require.NotContains(t, out, "\n")
}

func TestEmitJSONEmptyCollections(t *testing.T) {
	m := NewMapping(StyleBlock)
	m.AppendPair(NewScalar(StrTag, "items", StylePlain), NewSequence(StyleBlock))
	m.AppendPair(NewScalar(StrTag, "meta", StylePlain), NewMapping(StyleBlock))

	out, err := EmitString(&Document{Root: m}, EmitConfig{Mode: ModeJSONOneline})
	require.NoError(t, err)
	require.Contains(t, out, `"items":[]`)
	require.Contains(t, out, `"meta":{}`)
}
