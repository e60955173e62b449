package yamlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessorsTypedReads(t *testing.T) {
	src := `
name: atom
count: 42
ratio: 3.5
enabled: true
tag: ~
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	name, err := doc.Root.StringAt("/name")
	require.NoError(t, err)
	require.Equal(t, "atom", name)

	count, err := doc.Root.IntAt("/count")
	require.NoError(t, err)
	require.Equal(t, int64(42), count)

	ratio, err := doc.Root.FloatAt("/ratio")
	require.NoError(t, err)
	require.InDelta(t, 3.5, ratio, 0.0001)

	enabled, err := doc.Root.BoolAt("/enabled")
	require.NoError(t, err)
	require.True(t, enabled)

	isNull, err := doc.Root.IsNullAt("/tag")
	require.NoError(t, err)
	require.True(t, isNull)
}

func TestAccessorsMissingPathErrors(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("a: 1\n"), ParseConfig{})
	require.NoError(t, err)

	_, err = doc.Root.StringAt("/missing")
	require.Error(t, err)
}

func TestMustStringAtPanicsOnMissing(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("a: 1\n"), ParseConfig{})
	require.NoError(t, err)

	require.Panics(t, func() {
		doc.Root.MustStringAt("/missing")
	})
}
