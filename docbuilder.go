package yamlkit

import (
	"github.com/atomkit/yamlkit/internal/diag"
	"github.com/atomkit/yamlkit/internal/input"
	"github.com/atomkit/yamlkit/internal/resolve"
	tok "github.com/atomkit/yamlkit/internal/token"
)

// docBuilder assembles one Document from the flat event stream the
// engine produces, tracking the stack of in-progress collections and
// the pending key of whichever mapping is innermost.
type docBuilder struct {
	name   string
	logger *diag.Logger
	input  *input.Input

	anchors *anchorRegistry
	root    *Node
	stack   []*buildFrame

	versionDirective *tok.VersionDirective
	tagDirectives    []tok.TagDirective

	err error
}

type buildFrame struct {
	node         *Node
	pendingKey   *Node
	expectingKey bool
}

func newDocBuilder(name string, logger *diag.Logger, in *input.Input) *docBuilder {
	return &docBuilder{name: name, logger: logger, input: in, anchors: newAnchorRegistry()}
}

func (b *docBuilder) finish() *Document {
	return &Document{
		Root:             b.root,
		VersionDirective: b.versionDirective,
		TagDirectives:    b.tagDirectives,
		anchors:          b.anchors,
		logger:           b.logger,
		source:           b.name,
		input:            b.input,
	}
}

func (b *docBuilder) attach(child *Node, pos tok.Position) error {
	child.pos = pos
	if len(b.stack) == 0 {
		if b.root != nil {
			return newError(ErrGrammatical, b.name, pos, "a document may have only one root node")
		}
		b.root = child
		return nil
	}
	top := b.stack[len(b.stack)-1]
	switch top.node.Kind {
	case SequenceNode:
		top.node.Append(child)
	case MappingNode:
		if top.expectingKey {
			top.pendingKey = child
			top.expectingKey = false
		} else {
			for _, p := range top.node.Pairs {
				if Equal(p.Key, top.pendingKey) {
					return newError(ErrSemantic, b.name, pos, "duplicate mapping key %q", top.pendingKey.Value)
				}
			}
			top.node.AppendPair(top.pendingKey, child)
			top.pendingKey = nil
			top.expectingKey = true
		}
	}
	return nil
}

func (b *docBuilder) event(ev *tok.Event) error {
	switch ev.Type {
	case tok.EventTailComment:
		if len(b.stack) > 0 {
			b.stack[len(b.stack)-1].node.FootComment = string(ev.Tail_comment)
		} else if b.root != nil {
			b.root.FootComment = string(ev.Tail_comment)
		}
		return nil
	case tok.EventAlias:
		node := NewScalar("", string(ev.Anchor), StyleAlias)
		applyComments(node, ev)
		return b.attach(node, ev.Start_mark)
	case tok.EventScalar:
		node := buildScalar(ev)
		applyComments(node, ev)
		if len(ev.Anchor) > 0 {
			b.anchors.declare(string(ev.Anchor), node)
		}
		return b.attach(node, ev.Start_mark)
	case tok.EventSequenceStart:
		node := NewSequence(sequenceStyle(ev))
		node.Tag = resolveTag(string(ev.Tag), ev.Implicit, resolve.SeqTag)
		node.TagExplicit = !ev.Implicit
		applyComments(node, ev)
		if len(ev.Anchor) > 0 {
			b.anchors.declare(string(ev.Anchor), node)
		}
		if err := b.attach(node, ev.Start_mark); err != nil {
			return err
		}
		b.stack = append(b.stack, &buildFrame{node: node})
		return nil
	case tok.EventMappingStart:
		node := NewMapping(mappingStyle(ev))
		node.Tag = resolveTag(string(ev.Tag), ev.Implicit, resolve.MapTag)
		node.TagExplicit = !ev.Implicit
		applyComments(node, ev)
		if len(ev.Anchor) > 0 {
			b.anchors.declare(string(ev.Anchor), node)
		}
		if err := b.attach(node, ev.Start_mark); err != nil {
			return err
		}
		b.stack = append(b.stack, &buildFrame{node: node, expectingKey: true})
		return nil
	case tok.EventSequenceEnd, tok.EventMappingEnd:
		if len(b.stack) == 0 {
			return newError(ErrGrammatical, b.name, ev.Start_mark, "unbalanced collection end event")
		}
		b.stack = b.stack[:len(b.stack)-1]
		return nil
	}
	return nil
}

func sequenceStyle(ev *tok.Event) Style {
	if ev.Sequence_style() == tok.SequenceFlow {
		return StyleFlow
	}
	return StyleBlock
}

func mappingStyle(ev *tok.Event) Style {
	if ev.Mapping_style() == tok.MappingFlow {
		return StyleFlow
	}
	return StyleBlock
}

func resolveTag(explicit string, implicit bool, def string) string {
	if explicit != "" {
		return resolve.ShortTag(explicit)
	}
	return def
}

func buildScalar(ev *tok.Event) *Node {
	style := StylePlain
	switch ev.Scalar_style() {
	case tok.ScalarSingleQuoted:
		style = StyleSingleQuoted
	case tok.ScalarDoubleQuoted:
		style = StyleDoubleQuoted
	case tok.ScalarLiteral:
		style = StyleLiteral
	case tok.ScalarFolded:
		style = StyleFolded
	}

	value := string(ev.Value)
	tag := string(ev.Tag)
	explicit := !ev.Implicit

	if tag == "" {
		implicitTag := ""
		if style == StylePlain {
			if rtag, _, err := resolve.Resolve("", value); err == nil {
				implicitTag = rtag
			}
		}
		if implicitTag == "" {
			implicitTag = resolve.StrTag
		}
		tag = implicitTag
	} else {
		tag = resolve.ShortTag(tag)
	}

	n := NewScalar(tag, value, style)
	n.TagExplicit = explicit
	n.pos = ev.Start_mark
	return n
}

func applyComments(n *Node, ev *tok.Event) {
	if len(ev.Head_comment) > 0 {
		n.HeadComment = string(ev.Head_comment)
	}
	if len(ev.Line_comment) > 0 {
		n.LineComment = string(ev.Line_comment)
	}
	if len(ev.Foot_comment) > 0 {
		n.FootComment = string(ev.Foot_comment)
	}
}
