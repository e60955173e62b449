package yamlkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNodeInterfaceDecodesNestedStructure(t *testing.T) {
	src := `
name: atom
count: 3
ratio: 1.5
tags:
  - a
  - b
enabled: true
extra: ~
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	got, err := doc.Root.Interface()
	require.NoError(t, err)

	want := map[string]interface{}{
		"name":    "atom",
		"count":   3,
		"ratio":   1.5,
		"tags":    []interface{}{"a", "b"},
		"enabled": true,
		"extra":   nil,
	}
	require.Empty(t, cmp.Diff(want, got))
}
