package yamlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupWalksMappingsAndSequences(t *testing.T) {
	src := `
servers:
  - host: a.example.com
    port: 80
  - host: b.example.com
    port: 8080
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	node := doc.Root.Lookup("/servers/1/host")
	require.NotNil(t, node)
	require.Equal(t, "b.example.com", node.Value)

	require.Nil(t, doc.Root.Lookup("/servers/5/host"))
	require.Nil(t, doc.Root.Lookup("/missing"))
}

func TestNodePathRoundTrips(t *testing.T) {
	src := `
servers:
  - host: a.example.com
`
	doc, err := ParseBytes("t.yaml", []byte(src), ParseConfig{})
	require.NoError(t, err)

	host := doc.Root.Get("servers").At(0).Get("host")
	p := host.Path()
	require.Equal(t, Path("/servers/0/host"), p)
	require.Equal(t, host, doc.Root.Lookup(p))
}

func TestPathEscaping(t *testing.T) {
	m := NewMapping(StyleBlock)
	v := NewScalar(StrTag, "v", StylePlain)
	m.AppendPair(NewScalar(StrTag, "a/b~c", StylePlain), v)

	p := v.Path()
	require.Equal(t, Path("/a~1b~0c"), p)
	require.Equal(t, v, m.Lookup(p))
}
