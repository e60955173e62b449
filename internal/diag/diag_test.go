package diag_test

import (
	"bytes"
	"testing"

	"github.com/atomkit/yamlkit/internal/diag"
	tok "github.com/atomkit/yamlkit/internal/token"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticFormat(t *testing.T) {
	d := diag.Diagnostic{
		Level:   diag.LevelError,
		Source:  "doc.yaml",
		Pos:     tok.Position{Line: 4, Column: 9},
		Module:  "scanner",
		Message: "found character tab that cannot start any token",
	}
	require.Equal(t, "doc.yaml:5:10: error: scanner: found character tab that cannot start any token", d.Format())
}

func TestDiagnosticFormatWithSnippet(t *testing.T) {
	d := diag.Diagnostic{
		Level:   diag.LevelError,
		Source:  "doc.yaml",
		Pos:     tok.Position{Line: 0, Column: 3},
		Module:  "scanner",
		Message: "bad indentation",
		Snippet: "key:  value",
	}
	want := "doc.yaml:1:4: error: scanner: bad indentation\nkey:  value\n   ^"
	require.Equal(t, want, d.Format())
}

func TestLoggerCollectsDiagnostics(t *testing.T) {
	var out bytes.Buffer
	logger := diag.New(diag.WithOutput(&out), diag.WithCollect(true), diag.WithQuiet(true))

	logger.Warnf("doc.yaml", tok.Position{Line: 1, Column: 0}, "parser", "duplicate tag directive %q", "!!")
	logger.Errorf("doc.yaml", tok.Position{Line: 2, Column: 0}, "resolver", "undefined alias %q", "base")

	collected := logger.Collected()
	require.Len(t, collected, 2)
	require.Equal(t, diag.LevelWarn, collected[0].Level)
	require.Equal(t, diag.LevelError, collected[1].Level)
	require.True(t, logger.HasError())
	require.Empty(t, out.String())
}

func TestLoggerDispatchesWhenNotQuiet(t *testing.T) {
	var out bytes.Buffer
	logger := diag.New(diag.WithOutput(&out))
	logger.Infof("doc.yaml", tok.Position{}, "emitter", "wrote %d bytes", 12)
	require.Contains(t, out.String(), "wrote 12 bytes")
}
