package yamlkit

import (
	"bytes"
	"io"
	"os"

	"github.com/atomkit/yamlkit/internal/emitter"
	tok "github.com/atomkit/yamlkit/internal/token"
)

// EmitDocument writes doc to w per cfg. JSON modes render the tree
// directly; every other mode drives the block/flow emitter so style,
// comments, and anchors round-trip (subject to the style forced by
// ModeBlockOnly/ModeFlowOnly/ModeFlowOneline).
func EmitDocument(w io.Writer, doc *Document, cfg EmitConfig) error {
	switch cfg.Mode {
	case ModeJSON, ModeJSONTypePreserving, ModeJSONOneline:
		out, err := writeJSON(doc.Root, cfg)
		if err != nil {
			return err
		}
		return sinkOrWrite(w, cfg, WriteKindPlain, out)
	default:
		return emitYAML(w, doc, cfg)
	}
}

// EmitNode is EmitDocument for a bare Node with no directives or
// anchors beyond what the node itself carries.
func EmitNode(w io.Writer, n *Node, cfg EmitConfig) error {
	return EmitDocument(w, &Document{Root: n}, cfg)
}

func sinkOrWrite(w io.Writer, cfg EmitConfig, kind WriteKind, data []byte) error {
	if cfg.Sink != nil {
		return cfg.Sink(kind, data)
	}
	_, err := w.Write(data)
	if err != nil {
		return wrapError(ErrEmission, "", tok.Position{}, err)
	}
	return nil
}

func emitYAML(w io.Writer, doc *Document, cfg EmitConfig) error {
	oneline := cfg.Mode == ModeFlowOneline
	streamed := !oneline && (cfg.Mode == ModeColorized || cfg.Sink != nil)

	var buf bytes.Buffer
	dst := io.Writer(&buf)
	if !streamed && !oneline {
		dst = w
	}

	e := emitter.New(dst)
	if cfg.Indent > 0 {
		e.SetIndent(cfg.Indent)
	}
	if cfg.Width != 0 {
		e.SetWidth(cfg.Width)
	}
	if oneline {
		e.SetWidth(-1)
	}

	pal := emitter.DefaultPalette()
	if streamed {
		switch {
		case cfg.Mode == ModeColorized && cfg.Sink != nil:
			e.SetSink(func(kind emitter.WriteKind, p []byte) error {
				return cfg.Sink(WriteKind(kind), colorizeChunk(kind, p, pal))
			})
		case cfg.Mode == ModeColorized:
			e.SetSink(func(kind emitter.WriteKind, p []byte) error {
				return sinkOrWrite(w, EmitConfig{}, WriteKind(kind), colorizeChunk(kind, p, pal))
			})
		default:
			e.SetSink(func(kind emitter.WriteKind, p []byte) error {
				return cfg.Sink(WriteKind(kind), p)
			})
		}
	}

	tagDirectives := cfg.TagDirectives
	if tagDirectives == nil {
		tagDirectives = doc.TagDirectives
	}

	versionDirective := cfg.VersionDirective
	if versionDirective == nil {
		versionDirective = doc.VersionDirective
	}

	docStartImplicit := !cfg.DocStartMark && versionDirective == nil
	docEndImplicit := !cfg.DocEndMark

	root := doc.Root
	if cfg.SortKeys {
		root = sortNodeKeys(root)
	}

	events := []*tok.Event{
		{Type: tok.EventStreamStart, Encoding: tok.EncodingUTF8},
		{Type: tok.EventDocumentStart, Version_directive: versionDirective, Tag_directives: tagDirectives, Implicit: docStartImplicit},
	}
	events = appendNodeEvents(events, root, cfg.Mode)
	events = append(events,
		&tok.Event{Type: tok.EventDocumentEnd, Implicit: docEndImplicit},
		&tok.Event{Type: tok.EventStreamEnd},
	)

	for i, ev := range events {
		if err := e.Emit(ev, i == len(events)-1); err != nil {
			return wrapError(ErrEmission, "", ev.Start_mark, err)
		}
	}

	if streamed {
		return nil
	}
	if !oneline {
		return nil
	}

	out := collapseOneline(buf.Bytes())
	return sinkOrWrite(w, cfg, WriteKindPlain, out)
}

// colorizeChunk wraps p in pal's style for kind, passing KindPlain
// bytes (indentation, structural punctuation) through unstyled so
// whitespace and layout are never disturbed by an ANSI escape.
func colorizeChunk(kind emitter.WriteKind, p []byte, pal emitter.Palette) []byte {
	style, ok := pal.StyleFor(kind)
	if !ok {
		return p
	}
	return []byte(style.Render(string(p)))
}

// collapseOneline strips the line breaks a flow-only render still
// leaves between top-level document markers, producing the single
// line ModeFlowOneline promises.
func collapseOneline(b []byte) []byte {
	out := bytes.TrimRight(b, "\n")
	out = bytes.ReplaceAll(out, []byte("\n"), []byte(" "))
	return out
}

// sortNodeKeys returns a copy of n with every mapping's pairs reordered
// by the default key comparator, recursively.
func sortNodeKeys(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MappingNode:
		out := *n
		pairs := sortedPairs(n.Pairs)
		out.Pairs = make([]NodePair, len(pairs))
		for i, p := range pairs {
			out.Pairs[i] = NodePair{Key: sortNodeKeys(p.Key), Value: sortNodeKeys(p.Value)}
		}
		return &out
	case SequenceNode:
		out := *n
		out.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			out.Items[i] = sortNodeKeys(item)
		}
		return &out
	default:
		return n
	}
}

func appendNodeEvents(events []*tok.Event, n *Node, mode EmitMode) []*tok.Event {
	if n == nil {
		return append(events, &tok.Event{Type: tok.EventScalar, Tag: []byte(NullTag), Value: nil, Implicit: true})
	}
	anchor := []byte(n.Anchor)
	switch n.Kind {
	case ScalarNode:
		if n.Style == StyleAlias {
			return append(events, &tok.Event{Type: tok.EventAlias, Anchor: []byte(n.Value)})
		}
		style := scalarEventStyle(n.Style, mode)
		return append(events, &tok.Event{
			Type:     tok.EventScalar,
			Anchor:   anchor,
			Tag:      []byte(n.Tag),
			Value:    []byte(n.Value),
			Implicit: !n.TagExplicit,
			Style:    tok.Style(style),
		})
	case SequenceNode:
		events = append(events, &tok.Event{
			Type:     tok.EventSequenceStart,
			Anchor:   anchor,
			Tag:      []byte(n.Tag),
			Implicit: !n.TagExplicit,
			Style:    tok.Style(sequenceEventStyle(n.Style, mode)),
		})
		for _, item := range n.Items {
			events = appendNodeEvents(events, item, mode)
		}
		return append(events, &tok.Event{Type: tok.EventSequenceEnd})
	case MappingNode:
		events = append(events, &tok.Event{
			Type:     tok.EventMappingStart,
			Anchor:   anchor,
			Tag:      []byte(n.Tag),
			Implicit: !n.TagExplicit,
			Style:    tok.Style(mappingEventStyle(n.Style, mode)),
		})
		for _, p := range n.Pairs {
			events = appendNodeEvents(events, p.Key, mode)
			events = appendNodeEvents(events, p.Value, mode)
		}
		return append(events, &tok.Event{Type: tok.EventMappingEnd})
	}
	return events
}

func scalarEventStyle(s Style, mode EmitMode) tok.ScalarStyle {
	if mode == ModeBlockOnly {
		if s == StyleLiteral || s == StyleFolded {
			return tok.ScalarLiteral
		}
		return tok.ScalarPlain
	}
	switch s {
	case StyleSingleQuoted:
		return tok.ScalarSingleQuoted
	case StyleDoubleQuoted:
		return tok.ScalarDoubleQuoted
	case StyleLiteral:
		return tok.ScalarLiteral
	case StyleFolded:
		return tok.ScalarFolded
	}
	return tok.ScalarPlain
}

func sequenceEventStyle(s Style, mode EmitMode) tok.SequenceStyle {
	switch mode {
	case ModeBlockOnly:
		return tok.SequenceBlock
	case ModeFlowOnly, ModeFlowOneline:
		return tok.SequenceFlow
	}
	if s == StyleFlow {
		return tok.SequenceFlow
	}
	return tok.SequenceBlock
}

func mappingEventStyle(s Style, mode EmitMode) tok.MappingStyle {
	switch mode {
	case ModeBlockOnly:
		return tok.MappingBlock
	case ModeFlowOnly, ModeFlowOneline:
		return tok.MappingFlow
	}
	if s == StyleFlow {
		return tok.MappingFlow
	}
	return tok.MappingBlock
}

// EmitBytes renders doc to a new byte slice.
func EmitBytes(doc *Document, cfg EmitConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := EmitDocument(&buf, doc, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EmitString renders doc to a string.
func EmitString(doc *Document, cfg EmitConfig) (string, error) {
	b, err := EmitBytes(doc, cfg)
	return string(b), err
}

// EmitFile renders doc to a new or truncated file at path.
func EmitFile(path string, doc *Document, cfg EmitConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapError(ErrEmission, path, tok.Position{}, err)
	}
	defer f.Close()
	return EmitDocument(f, doc, cfg)
}
