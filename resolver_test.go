package yamlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveExpandsAlias(t *testing.T) {
	src := "base: &b\n  x: 1\nderived: *b\n"
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.NoError(t, doc.Resolve())

	derived := doc.Root.Get("derived")
	require.True(t, derived.IsMapping())
	require.Equal(t, "1", derived.Get("x").Value)

	derived.Get("x").Value = "2"
	require.Equal(t, "1", doc.Root.Get("base").Get("x").Value)
}

func TestResolveUndefinedAliasErrors(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("a: *missing\n"), ParseConfig{})
	require.NoError(t, err)
	err = doc.Resolve()
	require.Error(t, err)
}

func TestResolveExpandsMergeKeyFirstWriterWins(t *testing.T) {
	src := `
defaults: &defaults
  timeout: 30
  retries: 3
service:
  <<: *defaults
  retries: 5
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.NoError(t, doc.Resolve())

	service := doc.Root.Get("service")
	require.Equal(t, "30", service.Get("timeout").Value)
	require.Equal(t, "5", service.Get("retries").Value)
}

func TestResolveMergeKeyFromSequenceOfMappings(t *testing.T) {
	src := `
a: &a
  one: 1
b: &b
  two: 2
merged:
  <<: [*a, *b]
  three: 3
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)
	require.NoError(t, doc.Resolve())

	merged := doc.Root.Get("merged")
	require.Equal(t, "1", merged.Get("one").Value)
	require.Equal(t, "2", merged.Get("two").Value)
	require.Equal(t, "3", merged.Get("three").Value)
}

func TestResolveIsIdempotent(t *testing.T) {
	doc, err := ParseBytes("t.yaml", []byte("base: &b\n  x: 1\nderived: *b\n"), ParseConfig{})
	require.NoError(t, err)
	require.NoError(t, doc.Resolve())
	require.NoError(t, doc.Resolve())
	require.True(t, doc.Resolved)
}
