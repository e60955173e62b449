package emitter

import (
	tok "github.com/atomkit/yamlkit/internal/token"
)

func (e *Emitter) processLineComment() error {
	if len(e.lineComment) == 0 {
		return nil
	}
	var err error
	if !e.lastCharWhitepace {
		err = e.put(' ')
		if err != nil {
			return err
		}
	}
	err = e.writeComment(e.lineComment)
	if err != nil {
		return err
	}
	e.lineComment = e.lineComment[:0]
	return nil
}

func (e *Emitter) processAnchor() error {
	if e.anchorData.Anchor == nil {
		return nil
	}
	prev := e.currentKind
	e.currentKind = KindAnchor
	defer func() { e.currentKind = prev }()

	c := []byte{'&'}
	if e.anchorData.Alias {
		c[0] = '*'
	}
	if err := e.writeIndicator(c, true, false, false); err != nil {
		return err
	}
	return e.writeAnchor(e.anchorData.Anchor)
}

func (e *Emitter) processTag() error {
	if len(e.tagData.Handle) == 0 && len(e.tagData.Suffix) == 0 {
		return nil
	}
	prev := e.currentKind
	e.currentKind = KindTag
	defer func() { e.currentKind = prev }()

	var err error
	if len(e.tagData.Handle) > 0 {
		err = e.writeTagHandle(e.tagData.Handle)
		if err != nil {
			return err
		}
		if len(e.tagData.Suffix) > 0 {
			err = e.writeTagContent(e.tagData.Suffix, false)
			if err != nil {
				return err
			}
		}
	} else {
		// [Go] Allocate these slices elsewhere.
		err = e.writeIndicator([]byte("!<"), true, false, false)
		if err != nil {
			return err
		}
		err = e.writeTagContent(e.tagData.Suffix, false)
		if err != nil {
			return err
		}
		err = e.writeIndicator([]byte{'>'}, false, false, false)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) processScalar() error {
	switch e.scalarData.style {
	case tok.ScalarPlain:
		return e.writePlainScalar(e.scalarData.value, !e.simpleKeyContext)

	case tok.ScalarSingleQuoted:
		return e.writeSingleQuotedScalar(e.scalarData.value, !e.simpleKeyContext)

	case tok.ScalarDoubleQuoted:
		return e.writeDoubleQuotedScalar(e.scalarData.value, !e.simpleKeyContext)

	case tok.ScalarLiteral:
		return e.writeLiteralScalar(e.scalarData.value)

	case tok.ScalarFolded:
		return e.writeFoldedScalar(e.scalarData.value)
	}
	panic("unknown scalar style")
}

func (e *Emitter) processHeadComment() error {
	var err error
	if len(e.tailComment) > 0 {
		err = e.writeIndent()
		if err != nil {
			return err
		}
		err = e.writeComment(e.tailComment)
		if err != nil {
			return err
		}
		e.tailComment = e.tailComment[:0]
		e.footIndent = e.indentLevel
		if e.footIndent < 0 {
			e.footIndent = 0
		}
	}

	if len(e.headComment) == 0 {
		return nil
	}
	err = e.writeIndent()
	if err != nil {
		return err
	}
	err = e.writeComment(e.headComment)
	if err != nil {
		return err
	}
	e.headComment = e.headComment[:0]
	return nil
}

func (e *Emitter) processFootComment() error {
	if len(e.footComment) == 0 {
		return nil
	}
	err := e.writeIndent()
	if err != nil {
		return err
	}
	err = e.writeComment(e.footComment)
	if err != nil {
		return err
	}
	e.footComment = e.footComment[:0]
	e.footIndent = e.indentLevel
	if e.footIndent < 0 {
		e.footIndent = 0
	}
	return nil
}
