package input_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomkit/yamlkit/internal/input"
	"github.com/stretchr/testify/require"
)

func TestFromBytesPositionAt(t *testing.T) {
	in := input.FromBytes("mem", []byte("ab\ncd\nef"))
	defer in.Release()

	pos := in.PositionAt(0)
	require.Equal(t, 0, pos.Line)
	require.Equal(t, 0, pos.Column)

	pos = in.PositionAt(3)
	require.Equal(t, 1, pos.Line)
	require.Equal(t, 0, pos.Column)

	pos = in.PositionAt(7)
	require.Equal(t, 2, pos.Line)
	require.Equal(t, 1, pos.Column)
}

func TestFromBytesCopyIsIndependent(t *testing.T) {
	src := []byte("hello")
	in := input.FromBytesCopy("mem", src)
	defer in.Release()
	src[0] = 'H'
	require.Equal(t, "hello", string(in.Bytes()))
}

func TestStreamAppend(t *testing.T) {
	in := input.NewStream("stream")
	defer in.Release()
	require.NoError(t, in.Append([]byte("ab")))
	require.NoError(t, in.Append([]byte("cd")))
	require.Equal(t, "abcd", string(in.Bytes()))
}

func TestStreamAppendOnWrongKindFails(t *testing.T) {
	in := input.FromBytes("mem", []byte("x"))
	defer in.Release()
	require.Error(t, in.Append([]byte("y")))
}

func TestOpenFallsBackWithoutMmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("key: value\n"), 0o644))

	input.SetMmapDisabled(true)
	defer input.SetMmapDisabled(false)

	in, err := input.Open(path)
	require.NoError(t, err)
	defer in.Release()
	require.Equal(t, "key: value\n", string(in.Bytes()))
}

func TestRetainReleaseKeepsDataAlive(t *testing.T) {
	in := input.FromBytes("mem", []byte("z"))
	in.Retain()
	require.NoError(t, in.Release())
	require.Equal(t, "z", string(in.Bytes()))
	require.NoError(t, in.Release())
}
