//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package engine

import (
	"bytes"
	"fmt"
	"strconv"

	tok "github.com/atomkit/yamlkit/internal/token"
)

// The parser implements the following grammar:
//
// stream               ::= STREAM-START implicit_document? explicit_document* STREAM-END
// implicit_document    ::= block_node DOCUMENT-END*
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
// block_node_or_indentless_sequence    ::=
//                          ALIAS
//                          | properties (block_content | indentless_block_sequence)?
//                          | block_content
//                          | indentless_block_sequence
// block_node           ::= ALIAS
//                          | properties block_content?
//                          | block_content
// flow_node            ::= ALIAS
//                          | properties flow_content?
//                          | flow_content
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
// block_content        ::= block_collection | flow_collection | SCALAR
// flow_content         ::= flow_collection | SCALAR
// block_collection     ::= block_sequence | block_mapping
// flow_collection      ::= flow_sequence | flow_mapping
// block_sequence       ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
// block_mapping        ::= BLOCK-MAPPING_START
//                          ((KEY block_node_or_indentless_sequence?)?
//                          (VALUE block_node_or_indentless_sequence?)?)*
//                          BLOCK-END
// flow_sequence        ::= FLOW-SEQUENCE-START
//                          (flow_sequence_entry FLOW-ENTRY)*
//                          flow_sequence_entry?
//                          FLOW-SEQUENCE-END
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
// flow_mapping         ::= FLOW-MAPPING-START
//                          (flow_mapping_entry FLOW-ENTRY)*
//                          flow_mapping_entry?
//                          FLOW-MAPPING-END
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?

// Parse - Get the next event.
func Parse(parser *Engine) (*tok.Event, error) {
	// No events after the end of the stream or error.
	if parser.Stream_end_produced || parser.State == PARSE_END_STATE {
		return &tok.Event{}, nil
	}
	// Generate the next event.
	return parser.stateMachine()
}

// peek the next token in the token queue.
func (parser *Engine) peekToken() (*tok.Token, error) {
	if !parser.Token_available {
		err := parser.fetchMoreTokens()
		if err != nil {
			return nil, err
		}
	}
	token := &parser.Tokens[parser.Tokens_head]
	parser.unfoldComments(token)
	return token, nil
}

// unfoldComments walks through the comments queue and joins all
// comments behind the position of the provided token into the respective
// top-level comment slices in the parser.
func (parser *Engine) unfoldComments(token *tok.Token) {
	for parser.Comments_head < len(parser.Comments) && token.Start_mark.Index >= parser.Comments[parser.Comments_head].Token_mark.Index {
		comment := &parser.Comments[parser.Comments_head]
		if len(comment.Head) > 0 {
			if token.Type == tok.KindBlockEnd {
				// No heads on ends, so keep comment.head for a follow up token.
				break
			}
			if len(parser.Head_comment) > 0 {
				parser.Head_comment = append(parser.Head_comment, '\n')
			}
			parser.Head_comment = append(parser.Head_comment, comment.Head...)
		}
		if len(comment.Foot) > 0 {
			if len(parser.Foot_comment) > 0 {
				parser.Foot_comment = append(parser.Foot_comment, '\n')
			}
			parser.Foot_comment = append(parser.Foot_comment, comment.Foot...)
		}
		if len(comment.Line) > 0 {
			if len(parser.Line_comment) > 0 {
				parser.Line_comment = append(parser.Line_comment, '\n')
			}
			parser.Line_comment = append(parser.Line_comment, comment.Line...)
		}
		*comment = tok.Comment{}
		parser.Comments_head++
	}
}

// Remove the next token from the queue (must be called after peekToken).
func (parser *Engine) skipToken() {
	parser.Token_available = false
	parser.Tokens_parsed++
	parser.Stream_end_produced = parser.Tokens[parser.Tokens_head].Type == tok.KindStreamEnd
	parser.Tokens_head++
}

func buildParserError(errType tok.ErrorKind, problem string, problemLine, contextLine int) error {
	if errType == tok.ErrNone {
		return nil
	}
	var where string
	line := contextLine
	if line == 0 {
		line = problemLine
	}
	if line != 0 {
		// Scanner errors don't iterate line before returning error
		if errType == tok.ErrScanner {
			line++
		}
		where = "line " + strconv.Itoa(line) + ": "
	}
	if problem == "" {
		problem = "unknown problem parsing YAML content"
	}
	return fmt.Errorf("yaml: %s%s", where, problem)
}

// State dispatcher.
func (parser *Engine) stateMachine() (*tok.Event, error) {
	switch parser.State {
	case PARSE_STREAM_START_STATE:
		return parser.parseStreamStart()

	case PARSE_IMPLICIT_DOCUMENT_START_STATE:
		return parser.parseDocumentStart(true)

	case PARSE_DOCUMENT_START_STATE:
		return parser.parseDocumentStart(false)

	case PARSE_DOCUMENT_CONTENT_STATE:
		return parser.parseDocumentContent()

	case PARSE_DOCUMENT_END_STATE:
		return parser.parseDocumentEnd()

	case PARSE_BLOCK_NODE_STATE:
		return parser.parseNode(true, false)

	case PARSE_BLOCK_NODE_OR_INDENTLESS_SEQUENCE_STATE:
		return parser.parseNode(true, true)

	case PARSE_FLOW_NODE_STATE:
		return parser.parseNode(false, false)

	case PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE:
		return parser.parseBlockSequenceEntry(true)

	case PARSE_BLOCK_SEQUENCE_ENTRY_STATE:
		return parser.parseBlockSequenceEntry(false)

	case PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE:
		return parser.parseIndentlessSequenceEntry()

	case PARSE_BLOCK_MAPPING_FIRST_KEY_STATE:
		return parser.parseBlockMappingKey(true)

	case PARSE_BLOCK_MAPPING_KEY_STATE:
		return parser.parseBlockMappingKey(false)

	case PARSE_BLOCK_MAPPING_VALUE_STATE:
		return parser.parseBlockMappingValue()

	case PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE:
		return parser.parseFlowSequenceEntry(true)

	case PARSE_FLOW_SEQUENCE_ENTRY_STATE:
		return parser.parseFlowSequenceEntry(false)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE:
		return parser.parseFlowSequenceEntryMappingKey()

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE:
		return parser.parseFlowSequenceEntryMappingValue()

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE:
		return parser.parseFlowSequenceEntryMappingEnd()

	case PARSE_FLOW_MAPPING_FIRST_KEY_STATE:
		return parser.parseFlowMappingKey(true)

	case PARSE_FLOW_MAPPING_KEY_STATE:
		return parser.parseFlowMappingKey(false)

	case PARSE_FLOW_MAPPING_VALUE_STATE:
		return parser.parseFlowMappingValue(false)

	case PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE:
		return parser.parseFlowMappingValue(true)

	default:
		panic("invalid parser state")
	}
}

// Parse the production:
// stream   ::= STREAM-START implicit_document? explicit_document* STREAM-END
//
//	************
func (parser *Engine) parseStreamStart() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	if token.Type != tok.KindStreamStart {
		return nil, buildParserError(tok.ErrParser, "did not find expected <stream-start>", token.Start_mark.Line, 0)
	}
	parser.State = PARSE_IMPLICIT_DOCUMENT_START_STATE
	event := tok.Event{
		Type:       tok.EventStreamStart,
		Start_mark: token.Start_mark,
		End_mark:   token.End_mark,
		Encoding:   token.Encoding,
	}
	parser.skipToken()
	return &event, nil
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	*************************
func (parser *Engine) parseDocumentStart(implicit bool) (*tok.Event, error) {

	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	// Parse extra document end indicators.
	if !implicit {
		for token.Type == tok.KindDocumentEnd {
			parser.skipToken()
			token, err = parser.peekToken()
			if err != nil {
				return nil, err
			}
		}
	}

	if implicit && token.Type != tok.KindVersionDirective &&
		token.Type != tok.KindTagDirective &&
		token.Type != tok.KindDocumentStart &&
		token.Type != tok.KindStreamEnd {
		// Parse an implicit document.
		err = parser.processDirectives(nil, nil)
		if err != nil {
			return nil, err
		}
		parser.States = append(parser.States, PARSE_DOCUMENT_END_STATE)
		parser.State = PARSE_BLOCK_NODE_STATE

		var head_comment []byte
		if len(parser.Head_comment) > 0 {
			// [Go] Scan the header comment backwards, and if an empty line is found, break
			//      the header so the part before the last empty line goes into the
			//      document header, while the bottom of it goes into a follow up event.
			for i := len(parser.Head_comment) - 1; i > 0; i-- {
				if parser.Head_comment[i] == '\n' {
					if i == len(parser.Head_comment)-1 {
						head_comment = parser.Head_comment[:i]
						parser.Head_comment = parser.Head_comment[i+1:]
						break
					}
					if parser.Head_comment[i-1] == '\n' {
						head_comment = parser.Head_comment[:i-1]
						parser.Head_comment = parser.Head_comment[i+1:]
						break
					}
				}
			}
		}

		return &tok.Event{
			Type:       tok.EventDocumentStart,
			Start_mark: token.Start_mark,
			End_mark:   token.End_mark,

			Head_comment: head_comment,
		}, nil

	}
	if token.Type != tok.KindStreamEnd {
		// Parse an explicit document.
		var version_directive *tok.VersionDirective
		var tag_directives []tok.TagDirective
		start_mark := token.Start_mark
		err = parser.processDirectives(&version_directive, &tag_directives)
		if err != nil {
			return nil, err
		}
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindDocumentStart {
			return nil, buildParserError(tok.ErrParser, "did not find expected <document start>", token.Start_mark.Line, 0)
		}
		parser.States = append(parser.States, PARSE_DOCUMENT_END_STATE)
		parser.State = PARSE_DOCUMENT_CONTENT_STATE
		end_mark := token.End_mark

		event := tok.Event{
			Type:              tok.EventDocumentStart,
			Start_mark:        start_mark,
			End_mark:          end_mark,
			Version_directive: version_directive,
			Tag_directives:    tag_directives,
			Implicit:          false,
		}
		parser.skipToken()
		return &event, nil
	}

	// Parse the stream end.
	parser.State = PARSE_END_STATE
	event := tok.Event{
		Type:       tok.EventStreamEnd,
		Start_mark: token.Start_mark,
		End_mark:   token.End_mark,
	}
	parser.skipToken()

	return &event, nil
}

// Parse the productions:
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	***********
func (parser *Engine) parseDocumentContent() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	if token.Type == tok.KindVersionDirective ||
		token.Type == tok.KindTagDirective ||
		token.Type == tok.KindDocumentStart ||
		token.Type == tok.KindDocumentEnd ||
		token.Type == tok.KindStreamEnd {
		parser.State = parser.States[len(parser.States)-1]
		parser.States = parser.States[:len(parser.States)-1]
		return processEmptyScalar(token.Start_mark), nil

	}
	return parser.parseNode(true, false)
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*************
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (parser *Engine) parseDocumentEnd() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	start_mark := token.Start_mark
	end_mark := token.Start_mark

	implicit := true
	if token.Type == tok.KindDocumentEnd {
		end_mark = token.End_mark
		parser.skipToken()
		implicit = false
	}

	parser.Tag_directives = parser.Tag_directives[:0]

	parser.State = PARSE_DOCUMENT_START_STATE
	event := tok.Event{
		Type:       tok.EventDocumentEnd,
		Start_mark: start_mark,
		End_mark:   end_mark,
		Implicit:   implicit,
	}
	parser.setEventComments(&event)
	if len(event.Head_comment) > 0 && len(event.Foot_comment) == 0 {
		event.Foot_comment = event.Head_comment
		event.Head_comment = nil
	}
	return &event, nil
}

func (parser *Engine) setEventComments(event *tok.Event) {
	event.Head_comment = parser.Head_comment
	event.Line_comment = parser.Line_comment
	event.Foot_comment = parser.Foot_comment
	parser.Head_comment = nil
	parser.Line_comment = nil
	parser.Foot_comment = nil
	parser.Tail_comment = nil
	parser.Stem_comment = nil
}

// Parse the productions:
// block_node_or_indentless_sequence    ::=
//
//	ALIAS
//	*****
//	| properties (block_content | indentless_block_sequence)?
//	  **********  *
//	| block_content | indentless_block_sequence
//	  *
//
// block_node           ::= ALIAS
//
//	*****
//	| properties block_content?
//	  ********** *
//	| block_content
//	  *
//
// flow_node            ::= ALIAS
//
//	*****
//	| properties flow_content?
//	  ********** *
//	| flow_content
//	  *
//
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
//
//	*************************
//
// block_content        ::= block_collection | flow_collection | SCALAR
//
//	******
//
// flow_content         ::= flow_collection | SCALAR
//
//	******
func (parser *Engine) parseNode(block, indentless_sequence bool) (*tok.Event, error) {
	var event tok.Event
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	if token.Type == tok.KindAlias {
		parser.State = parser.States[len(parser.States)-1]
		parser.States = parser.States[:len(parser.States)-1]
		event = tok.Event{
			Type:       tok.EventAlias,
			Start_mark: token.Start_mark,
			End_mark:   token.End_mark,
			Anchor:     token.Value,
		}
		parser.setEventComments(&event)
		parser.skipToken()
		return &event, nil
	}

	start_mark := token.Start_mark
	end_mark := token.Start_mark

	var tag_token bool
	var tag_handle, tag_suffix, anchor []byte
	var tag_mark tok.Position
	if token.Type == tok.KindAnchor {
		anchor = token.Value
		start_mark = token.Start_mark
		end_mark = token.End_mark
		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type == tok.KindTag {
			tag_token = true
			tag_handle = token.Value
			tag_suffix = token.Suffix
			tag_mark = token.Start_mark
			end_mark = token.End_mark
			parser.skipToken()
			token, err = parser.peekToken()
			if err != nil {
				return nil, err
			}
		}
	} else if token.Type == tok.KindTag {
		tag_token = true
		tag_handle = token.Value
		tag_suffix = token.Suffix
		start_mark = token.Start_mark
		tag_mark = token.Start_mark
		end_mark = token.End_mark
		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type == tok.KindAnchor {
			anchor = token.Value
			end_mark = token.End_mark
			parser.skipToken()
			token, err = parser.peekToken()
			if err != nil {
				return nil, err
			}
		}
	}

	var tag []byte
	if tag_token {
		if len(tag_handle) == 0 {
			tag = tag_suffix
			tag_suffix = nil
		} else {
			for i := range parser.Tag_directives {
				if bytes.Equal(parser.Tag_directives[i].Handle, tag_handle) {
					tag = append([]byte(nil), parser.Tag_directives[i].Prefix...)
					tag = append(tag, tag_suffix...)
					break
				}
			}
			if len(tag) == 0 {
				return nil, buildParserError(tok.ErrParser, "found undefined tag handle", tag_mark.Line, start_mark.Line)
			}
		}
	}

	implicit := len(tag) == 0
	if indentless_sequence && token.Type == tok.KindBlockEntry {
		end_mark = token.End_mark
		parser.State = PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
		event = tok.Event{
			Type:       tok.EventSequenceStart,
			Start_mark: start_mark,
			End_mark:   end_mark,
			Anchor:     anchor,
			Tag:        tag,
			Implicit:   implicit,
			Style:      tok.Style(tok.SequenceBlock),
		}
		return &event, nil
	}
	if token.Type == tok.KindScalar {
		var plain_implicit, quoted_implicit bool
		end_mark = token.End_mark
		if (len(tag) == 0 && token.Style == tok.ScalarPlain) || (len(tag) == 1 && tag[0] == '!') {
			plain_implicit = true
		} else if len(tag) == 0 {
			quoted_implicit = true
		}
		parser.State = parser.States[len(parser.States)-1]
		parser.States = parser.States[:len(parser.States)-1]

		event = tok.Event{
			Type:            tok.EventScalar,
			Start_mark:      start_mark,
			End_mark:        end_mark,
			Anchor:          anchor,
			Tag:             tag,
			Value:           token.Value,
			Implicit:        plain_implicit,
			Quoted_implicit: quoted_implicit,
			Style:           tok.Style(token.Style),
		}
		parser.setEventComments(&event)
		parser.skipToken()
		return &event, nil
	}
	if token.Type == tok.KindFlowSequenceStart {
		// [Go] Some of the events below can be merged as they differ only on style.
		end_mark = token.End_mark
		parser.State = PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE
		event = tok.Event{
			Type:       tok.EventSequenceStart,
			Start_mark: start_mark,
			End_mark:   end_mark,
			Anchor:     anchor,
			Tag:        tag,
			Implicit:   implicit,
			Style:      tok.Style(tok.SequenceFlow),
		}
		parser.setEventComments(&event)
		return &event, nil
	}
	if token.Type == tok.KindFlowMappingStart {
		end_mark = token.End_mark
		parser.State = PARSE_FLOW_MAPPING_FIRST_KEY_STATE
		event = tok.Event{
			Type:       tok.EventMappingStart,
			Start_mark: start_mark,
			End_mark:   end_mark,
			Anchor:     anchor,
			Tag:        tag,
			Implicit:   implicit,
			Style:      tok.Style(tok.MappingFlow),
		}
		parser.setEventComments(&event)
		return &event, nil
	}
	if block && token.Type == tok.KindBlockSequenceStart {
		end_mark = token.End_mark
		parser.State = PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE
		event = tok.Event{
			Type:       tok.EventSequenceStart,
			Start_mark: start_mark,
			End_mark:   end_mark,
			Anchor:     anchor,
			Tag:        tag,
			Implicit:   implicit,
			Style:      tok.Style(tok.SequenceBlock),
		}
		if parser.Stem_comment != nil {
			event.Head_comment = parser.Stem_comment
			parser.Stem_comment = nil
		}
		return &event, nil
	}
	if block && token.Type == tok.KindBlockMappingStart {
		end_mark = token.End_mark
		parser.State = PARSE_BLOCK_MAPPING_FIRST_KEY_STATE
		event = tok.Event{
			Type:       tok.EventMappingStart,
			Start_mark: start_mark,
			End_mark:   end_mark,
			Anchor:     anchor,
			Tag:        tag,
			Implicit:   implicit,
			Style:      tok.Style(tok.MappingBlock),
		}
		if parser.Stem_comment != nil {
			event.Head_comment = parser.Stem_comment
			parser.Stem_comment = nil
		}
		return &event, nil
	}
	if len(anchor) > 0 || len(tag) > 0 {
		parser.State = parser.States[len(parser.States)-1]
		parser.States = parser.States[:len(parser.States)-1]

		event = tok.Event{
			Type:            tok.EventScalar,
			Start_mark:      start_mark,
			End_mark:        end_mark,
			Anchor:          anchor,
			Tag:             tag,
			Implicit:        implicit,
			Quoted_implicit: false,
			Style:           tok.Style(tok.ScalarPlain),
		}
		return &event, nil
	}

	return nil, buildParserError(tok.ErrParser, "did not find expected node content", token.Start_mark.Line, start_mark.Line)
}

// Parse the productions:
// block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
//
//	********************  *********** *             *********
func (parser *Engine) parseBlockSequenceEntry(first bool) (*tok.Event, error) {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return nil, err
		}
		parser.Marks = append(parser.Marks, token.Start_mark)
		parser.skipToken()
	}

	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	if token.Type == tok.KindBlockEntry {
		mark := token.End_mark
		prior_head_len := len(parser.Head_comment)
		parser.skipToken()
		err = parser.splitStemComment(prior_head_len)
		if err != nil {
			return nil, err
		}
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindBlockEntry && token.Type != tok.KindBlockEnd {
			parser.States = append(parser.States, PARSE_BLOCK_SEQUENCE_ENTRY_STATE)
			return parser.parseNode(true, false)
		}
		parser.State = PARSE_BLOCK_SEQUENCE_ENTRY_STATE
		return processEmptyScalar(mark), nil
	}
	if token.Type == tok.KindBlockEnd {
		parser.State = parser.States[len(parser.States)-1]
		parser.States = parser.States[:len(parser.States)-1]
		parser.Marks = parser.Marks[:len(parser.Marks)-1]

		event := tok.Event{
			Type:       tok.EventSequenceEnd,
			Start_mark: token.Start_mark,
			End_mark:   token.End_mark,
		}

		parser.skipToken()
		return &event, nil
	}

	context_mark := parser.Marks[len(parser.Marks)-1]
	parser.Marks = parser.Marks[:len(parser.Marks)-1]
	return nil, buildParserError(tok.ErrParser, "did not find expected '-' indicator", token.Start_mark.Line, context_mark.Line)
}

// Parse the productions:
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
//
//	*********** *
func (parser *Engine) parseIndentlessSequenceEntry() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	if token.Type == tok.KindBlockEntry {
		mark := token.End_mark
		prior_head_len := len(parser.Head_comment)
		parser.skipToken()
		err = parser.splitStemComment(prior_head_len)
		if err != nil {
			return nil, err
		}
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindBlockEntry &&
			token.Type != tok.KindKey &&
			token.Type != tok.KindValue &&
			token.Type != tok.KindBlockEnd {
			parser.States = append(parser.States, PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE)
			return parser.parseNode(true, false)
		}
		parser.State = PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
		return processEmptyScalar(mark), nil
	}
	parser.State = parser.States[len(parser.States)-1]
	parser.States = parser.States[:len(parser.States)-1]

	return &tok.Event{
		Type:       tok.EventSequenceEnd,
		Start_mark: token.Start_mark,
		End_mark:   token.Start_mark, // [Go] Shouldn't this be token.end_mark?
	}, nil
}

// Split stem comment from head comment.
//
// When a sequence or map is found under a sequence entry, the former head comment
// is assigned to the underlying sequence or map as a whole, not the individual
// sequence or map entry as would be expected otherwise. To handle this case the
// previous head comment is moved aside as the stem comment.
func (parser *Engine) splitStemComment(stem_len int) error {
	if stem_len == 0 {
		return nil
	}

	token, err := parser.peekToken()
	if err != nil {
		return err
	}
	if token.Type != tok.KindBlockSequenceStart && token.Type != tok.KindBlockMappingStart {
		return nil
	}

	parser.Stem_comment = parser.Head_comment[:stem_len]
	if len(parser.Head_comment) == stem_len {
		parser.Head_comment = nil
	} else {
		// Copy suffix to prevent very strange bugs if someone ever appends
		// further bytes to the prefix in the stem_comment slice above.
		parser.Head_comment = append([]byte(nil), parser.Head_comment[stem_len+1:]...)
	}
	return nil
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	*******************
//	((KEY block_node_or_indentless_sequence?)?
//	  *** *
//	(VALUE block_node_or_indentless_sequence?)?)*
//
//	BLOCK-END
//	*********
func (parser *Engine) parseBlockMappingKey(first bool) (*tok.Event, error) {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return nil, err
		}
		parser.Marks = append(parser.Marks, token.Start_mark)
		parser.skipToken()
	}

	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	// [Go] A tail comment was left from the prior mapping value processed. Emit an event
	//      as it needs to be processed with that value and not the following key.
	if len(parser.Tail_comment) > 0 {
		parser.Tail_comment = nil
		return &tok.Event{
			Type:         tok.EventTailComment,
			Start_mark:   token.Start_mark,
			End_mark:     token.End_mark,
			Foot_comment: parser.Tail_comment,
		}, nil
	}

	if token.Type == tok.KindKey {
		mark := token.End_mark
		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindKey &&
			token.Type != tok.KindValue &&
			token.Type != tok.KindBlockEnd {
			parser.States = append(parser.States, PARSE_BLOCK_MAPPING_VALUE_STATE)
			return parser.parseNode(true, true)
		}
		parser.State = PARSE_BLOCK_MAPPING_VALUE_STATE
		return processEmptyScalar(mark), nil
	}
	if token.Type == tok.KindBlockEnd {
		parser.State = parser.States[len(parser.States)-1]
		parser.States = parser.States[:len(parser.States)-1]
		parser.Marks = parser.Marks[:len(parser.Marks)-1]
		event := tok.Event{
			Type:       tok.EventMappingEnd,
			Start_mark: token.Start_mark,
			End_mark:   token.End_mark,
		}
		parser.setEventComments(&event)
		parser.skipToken()
		return &event, nil
	}

	context_mark := parser.Marks[len(parser.Marks)-1]
	parser.Marks = parser.Marks[:len(parser.Marks)-1]
	return nil, buildParserError(tok.ErrParser, "did not find expected key", token.Start_mark.Line, context_mark.Line)
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	((KEY block_node_or_indentless_sequence?)?
//
//	(VALUE block_node_or_indentless_sequence?)?)*
//	 ***** *
//	BLOCK-END
func (parser *Engine) parseBlockMappingValue() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	if token.Type == tok.KindValue {
		mark := token.End_mark
		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindKey &&
			token.Type != tok.KindValue &&
			token.Type != tok.KindBlockEnd {
			parser.States = append(parser.States, PARSE_BLOCK_MAPPING_KEY_STATE)
			return parser.parseNode(true, true)
		}
		parser.State = PARSE_BLOCK_MAPPING_KEY_STATE
		return processEmptyScalar(mark), nil
	}
	parser.State = PARSE_BLOCK_MAPPING_KEY_STATE
	return processEmptyScalar(token.Start_mark), nil
}

// Parse the productions:
// flow_sequence        ::= FLOW-SEQUENCE-START
//
//	*******************
//	(flow_sequence_entry FLOW-ENTRY)*
//	 *                   **********
//	flow_sequence_entry?
//	*
//	FLOW-SEQUENCE-END
//	*****************
//
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (parser *Engine) parseFlowSequenceEntry(first bool) (*tok.Event, error) {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return nil, err
		}
		parser.Marks = append(parser.Marks, token.Start_mark)
		parser.skipToken()
	}
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	if token.Type != tok.KindFlowSequenceEnd {
		if !first {
			if token.Type == tok.KindFlowEntry {
				parser.skipToken()
				token, err = parser.peekToken()
				if err != nil {
					return nil, err
				}
			} else {
				context_mark := parser.Marks[len(parser.Marks)-1]
				parser.Marks = parser.Marks[:len(parser.Marks)-1]
				return nil, buildParserError(tok.ErrParser, "did not find expected ',' or ']'", token.Start_mark.Line, context_mark.Line)
			}
		}

		if token.Type == tok.KindKey {
			parser.State = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE
			event := tok.Event{
				Type:       tok.EventMappingStart,
				Start_mark: token.Start_mark,
				End_mark:   token.End_mark,
				Implicit:   true,
				Style:      tok.Style(tok.MappingFlow),
			}
			parser.skipToken()
			return &event, nil
		}
		if token.Type != tok.KindFlowSequenceEnd {
			parser.States = append(parser.States, PARSE_FLOW_SEQUENCE_ENTRY_STATE)
			return parser.parseNode(false, false)
		}
	}

	parser.State = parser.States[len(parser.States)-1]
	parser.States = parser.States[:len(parser.States)-1]
	parser.Marks = parser.Marks[:len(parser.Marks)-1]

	event := tok.Event{
		Type:       tok.EventSequenceEnd,
		Start_mark: token.Start_mark,
		End_mark:   token.End_mark,
	}
	parser.setEventComments(&event)

	parser.skipToken()
	return &event, nil
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*** *
func (parser *Engine) parseFlowSequenceEntryMappingKey() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	if token.Type != tok.KindValue &&
		token.Type != tok.KindFlowEntry &&
		token.Type != tok.KindFlowSequenceEnd {
		parser.States = append(parser.States, PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE)
		return parser.parseNode(false, false)
	}
	mark := token.End_mark
	parser.skipToken()
	parser.State = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE
	return processEmptyScalar(mark), nil
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	***** *
func (parser *Engine) parseFlowSequenceEntryMappingValue() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	if token.Type == tok.KindValue {
		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindFlowEntry && token.Type != tok.KindFlowSequenceEnd {
			parser.States = append(parser.States, PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE)
			return parser.parseNode(false, false)
		}
	}
	parser.State = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE
	return processEmptyScalar(token.Start_mark), nil
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (parser *Engine) parseFlowSequenceEntryMappingEnd() (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	parser.State = PARSE_FLOW_SEQUENCE_ENTRY_STATE
	event := tok.Event{
		Type:       tok.EventMappingEnd,
		Start_mark: token.Start_mark,
		End_mark:   token.Start_mark, // [Go] Shouldn't this be end_mark?
	}
	return &event, nil
}

// Parse the productions:
// flow_mapping         ::= FLOW-MAPPING-START
//
//	******************
//	(flow_mapping_entry FLOW-ENTRY)*
//	 *                  **********
//	flow_mapping_entry?
//	******************
//	FLOW-MAPPING-END
//	****************
//
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - *** *
func (parser *Engine) parseFlowMappingKey(first bool) (*tok.Event, error) {
	if first {
		token, err := parser.peekToken()
		if err != nil {
			return nil, err
		}
		parser.Marks = append(parser.Marks, token.Start_mark)
		parser.skipToken()
	}

	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}

	if token.Type != tok.KindFlowMappingEnd {
		if !first {
			if token.Type == tok.KindFlowEntry {
				parser.skipToken()
				token, err = parser.peekToken()
				if err != nil {
					return nil, err
				}
			} else {
				context_mark := parser.Marks[len(parser.Marks)-1]
				parser.Marks = parser.Marks[:len(parser.Marks)-1]
				return nil, buildParserError(tok.ErrParser, "did not find expected ',' or '}'", token.Start_mark.Line, context_mark.Line)
			}
		}

		if token.Type == tok.KindKey {
			parser.skipToken()
			token, err = parser.peekToken()
			if err != nil {
				return nil, err
			}
			if token.Type != tok.KindValue &&
				token.Type != tok.KindFlowEntry &&
				token.Type != tok.KindFlowMappingEnd {
				parser.States = append(parser.States, PARSE_FLOW_MAPPING_VALUE_STATE)
				return parser.parseNode(false, false)
			}
			parser.State = PARSE_FLOW_MAPPING_VALUE_STATE
			return processEmptyScalar(token.Start_mark), nil
		}
		if token.Type != tok.KindFlowMappingEnd {
			parser.States = append(parser.States, PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE)
			return parser.parseNode(false, false)
		}
	}

	parser.State = parser.States[len(parser.States)-1]
	parser.States = parser.States[:len(parser.States)-1]
	parser.Marks = parser.Marks[:len(parser.Marks)-1]
	event := tok.Event{
		Type:       tok.EventMappingEnd,
		Start_mark: token.Start_mark,
		End_mark:   token.End_mark,
	}
	parser.setEventComments(&event)
	parser.skipToken()
	return &event, nil
}

// Parse the productions:
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - ***** *
func (parser *Engine) parseFlowMappingValue(empty bool) (*tok.Event, error) {
	token, err := parser.peekToken()
	if err != nil {
		return nil, err
	}
	if empty {
		parser.State = PARSE_FLOW_MAPPING_KEY_STATE
		return processEmptyScalar(token.Start_mark), nil
	}
	if token.Type == tok.KindValue {
		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return nil, err
		}
		if token.Type != tok.KindFlowEntry && token.Type != tok.KindFlowMappingEnd {
			parser.States = append(parser.States, PARSE_FLOW_MAPPING_KEY_STATE)
			return parser.parseNode(false, false)
		}
	}
	parser.State = PARSE_FLOW_MAPPING_KEY_STATE
	return processEmptyScalar(token.Start_mark), nil
}

// Generate an empty scalar event.
func processEmptyScalar(mark tok.Position) *tok.Event {
	return &tok.Event{
		Type:       tok.EventScalar,
		Start_mark: mark,
		End_mark:   mark,
		Value:      nil, // Empty
		Implicit:   true,
		Style:      tok.Style(tok.ScalarPlain),
	}
}

// Parse directives.
func (parser *Engine) processDirectives(version_directive_ref **tok.VersionDirective,
	tag_directives_ref *[]tok.TagDirective) error {

	var version_directive *tok.VersionDirective
	var tag_directives []tok.TagDirective

	token, err := parser.peekToken()
	if err != nil {
		return err
	}

	for token.Type == tok.KindVersionDirective || token.Type == tok.KindTagDirective {
		if token.Type == tok.KindVersionDirective {
			if version_directive != nil {
				return buildParserError(tok.ErrParser, "found duplicate %YAML directive", token.Start_mark.Line, 0)
			}
			if token.Major != 1 || token.Minor != 1 {
				return buildParserError(tok.ErrParser, "found incompatible YAML document", token.Start_mark.Line, 0)
			}
			version_directive = &tok.VersionDirective{
				Major: token.Major,
				Minor: token.Minor,
			}
		} else if token.Type == tok.KindTagDirective {
			value := tok.TagDirective{
				Handle: token.Value,
				Prefix: token.Prefix,
			}
			err = parser.appendTagDirective(value, false, token.Start_mark)
			if err != nil {
				return err
			}
			tag_directives = append(tag_directives, value)
		}

		parser.skipToken()
		token, err = parser.peekToken()
		if err != nil {
			return err
		}
	}

	for i := range tok.DefaultTagDirectives {
		err = parser.appendTagDirective(tok.DefaultTagDirectives[i], true, token.Start_mark)
		if err != nil {
			return err
		}
	}

	if version_directive_ref != nil {
		*version_directive_ref = version_directive
	}
	if tag_directives_ref != nil {
		*tag_directives_ref = tag_directives
	}
	return nil
}

// Append a tag directive to the directives stack.
func (parser *Engine) appendTagDirective(value tok.TagDirective, allow_duplicates bool, mark tok.Position) error {
	for i := range parser.Tag_directives {
		if bytes.Equal(value.Handle, parser.Tag_directives[i].Handle) {
			if allow_duplicates {
				return nil
			}
			return buildParserError(tok.ErrParser, "found duplicate %TAG directive", mark.Line, 0)
		}
	}

	// [Go] I suspect the copy is unnecessary. This was likely done
	// because there was no way to track ownership of the data.
	value_copy := tok.TagDirective{
		Handle: make([]byte, len(value.Handle)),
		Prefix: make([]byte, len(value.Prefix)),
	}
	copy(value_copy.Handle, value.Handle)
	copy(value_copy.Prefix, value.Prefix)
	parser.Tag_directives = append(parser.Tag_directives, value_copy)
	return nil
}
