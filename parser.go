package yamlkit

import (
	"bytes"
	"io"

	"github.com/atomkit/yamlkit/internal/diag"
	"github.com/atomkit/yamlkit/internal/engine"
	"github.com/atomkit/yamlkit/internal/input"
	tok "github.com/atomkit/yamlkit/internal/token"
)

// Parser drives one scanner/grammar engine over a stream and hands back
// one Document per call to Next, so a multi-document stream ("---"
// separated) can be consumed incrementally instead of materializing
// every document up front.
type Parser struct {
	name   string
	logger *diag.Logger
	input  *input.Input
	eng    *engine.Engine
	done   bool
}

// NewParser returns a Parser reading from r. name labels diagnostics and
// error positions; it need not be a real path.
func NewParser(name string, r io.Reader, cfg ParseConfig) *Parser {
	return &Parser{name: name, logger: cfg.logger(), eng: engine.New(r)}
}

// NewParserBytes is NewParser over an in-memory byte slice, wired
// through internal/input so positions and snippets are available on the
// documents it builds.
func NewParserBytes(name string, data []byte, cfg ParseConfig) *Parser {
	in := input.FromBytes(name, data)
	return newParser(name, in, bytes.NewReader(data), cfg)
}

func newParser(name string, in *input.Input, r io.Reader, cfg ParseConfig) *Parser {
	return &Parser{name: name, logger: cfg.logger(), input: in, eng: engine.New(r)}
}

// Next parses and builds the stream's next document. It returns
// (nil, io.EOF) once the stream is exhausted.
func (p *Parser) Next() (*Document, error) {
	if p.done {
		return nil, io.EOF
	}

	b := newDocBuilder(p.name, p.logger, p.input)
	sawDocument := false

	for {
		ev, err := engine.Parse(p.eng)
		if err != nil {
			return nil, wrapError(ErrLexical, p.name, tok.Position{}, err)
		}
		switch ev.Type {
		case tok.EventStreamStart:
			continue
		case tok.EventStreamEnd:
			p.done = true
			if !sawDocument {
				return nil, io.EOF
			}
			return b.finish(), nil
		case tok.EventDocumentStart:
			sawDocument = true
			b.versionDirective = ev.Version_directive
			b.tagDirectives = ev.Tag_directives
			continue
		case tok.EventDocumentEnd:
			return b.finish(), nil
		default:
			if err := b.event(ev); err != nil {
				return nil, err
			}
		}
	}
}

// All drains every remaining document from the stream.
func (p *Parser) All() ([]*Document, error) {
	var docs []*Document
	for {
		doc, err := p.Next()
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
}
