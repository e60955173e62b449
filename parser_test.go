package yamlkit

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParserNextIteratesDocuments(t *testing.T) {
	p := NewParserBytes("t.yaml", []byte("a: 1\n---\nb: 2\n---\nc: 3\n"), ParseConfig{})

	var values []string
	for {
		doc, err := p.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		for _, pair := range doc.Root.Pairs {
			values = append(values, pair.Value.Value)
		}
	}
	require.Equal(t, []string{"1", "2", "3"}, values)
}

func TestParserNextOnEmptyStreamReturnsEOF(t *testing.T) {
	p := NewParserBytes("t.yaml", []byte(""), ParseConfig{})
	_, err := p.Next()
	require.Equal(t, io.EOF, err)
}

func TestParserAllCollectsEveryDocument(t *testing.T) {
	p := NewParserBytes("t.yaml", []byte("a: 1\n---\nb: 2\n"), ParseConfig{})
	docs, err := p.All()
	require.NoError(t, err)
	require.Len(t, docs, 2)
}
