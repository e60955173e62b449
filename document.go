package yamlkit

import (
	"bytes"
	"io"

	"github.com/atomkit/yamlkit/internal/diag"
	"github.com/atomkit/yamlkit/internal/input"
	tok "github.com/atomkit/yamlkit/internal/token"
)

// Document owns one parsed or hand-built node tree plus the directives
// and diagnostics gathered while building it.
type Document struct {
	Root *Node

	VersionDirective *tok.VersionDirective
	TagDirectives    []tok.TagDirective

	Resolved bool

	anchors *anchorRegistry
	logger  *diag.Logger
	source  string
	input   *input.Input
}

// NewDocument returns an empty, detached document with root as its root
// node; root may be nil until the caller assigns one.
func NewDocument(root *Node) *Document {
	return &Document{Root: root, anchors: newAnchorRegistry()}
}

// Anchor returns the node most recently declared under name, or nil.
func (d *Document) Anchor(name string) *Node {
	if d.anchors == nil {
		return nil
	}
	return d.anchors.lookup(name)
}

// AnchorNames returns every anchor name declared in the document, in
// declaration order.
func (d *Document) AnchorNames() []string {
	if d.anchors == nil {
		return nil
	}
	return d.anchors.names()
}

// Snippet returns the source text spanning [start,end) of the input the
// document was parsed from, or "" for a hand-built document.
func (d *Document) Snippet(start, end int) string {
	if d.input == nil {
		return ""
	}
	return string(d.input.Range(start, end))
}

// Diagnostics returns every diagnostic collected while building the
// document, when its ParseConfig set Collect.
func (d *Document) Diagnostics() []diag.Diagnostic {
	if d.logger == nil {
		return nil
	}
	return d.logger.Collected()
}

// ParseBytes builds a Document from the first (or only) document of an
// in-memory byte slice. name is used only to label diagnostics.
func ParseBytes(name string, data []byte, cfg ParseConfig) (*Document, error) {
	in := input.FromBytes(name, data)
	p := newParser(name, in, bytes.NewReader(data), cfg)
	doc, err := p.Next()
	if err == io.EOF {
		return nil, newError(ErrGrammatical, name, tok.Position{}, "input contains no document")
	}
	if err != nil {
		return nil, err
	}
	if cfg.ResolveOnBuild {
		if err := doc.Resolve(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ParseString is ParseBytes for a string source.
func ParseString(name, data string, cfg ParseConfig) (*Document, error) {
	return ParseBytes(name, []byte(data), cfg)
}

// ParseReader builds a Document by draining r fully before parsing; use
// ParseFile for a path that should be memory-mapped when possible.
func ParseReader(name string, r io.Reader, cfg ParseConfig) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError(ErrInput, name, tok.Position{}, err)
	}
	return ParseBytes(name, data, cfg)
}

// ParseFile opens path (memory-mapping it unless cfg.DisableMmap is
// set) and builds a Document from its contents.
func ParseFile(path string, cfg ParseConfig) (*Document, error) {
	input.SetMmapDisabled(cfg.DisableMmap)
	in, err := input.Open(path)
	if err != nil {
		return nil, wrapError(ErrInput, path, tok.Position{}, err)
	}
	defer in.Release()

	p := newParser(path, in, bytes.NewReader(in.Bytes()), cfg)
	doc, err := p.Next()
	if err == io.EOF {
		return nil, newError(ErrGrammatical, path, tok.Position{}, "input contains no document")
	}
	if err != nil {
		return nil, err
	}
	if cfg.ResolveOnBuild {
		if err := doc.Resolve(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ParseAllBytes builds every document in an in-memory multi-document
// stream ("---"-separated).
func ParseAllBytes(name string, data []byte, cfg ParseConfig) ([]*Document, error) {
	in := input.FromBytes(name, data)
	p := newParser(name, in, bytes.NewReader(data), cfg)
	docs, err := p.All()
	if err != nil {
		return docs, err
	}
	if cfg.ResolveOnBuild {
		for _, doc := range docs {
			if err := doc.Resolve(); err != nil {
				return docs, err
			}
		}
	}
	return docs, nil
}
