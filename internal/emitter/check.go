package emitter

import (
	tok "github.com/atomkit/yamlkit/internal/token"
)

// Check if the next events represent an empty sequence.
func (e *Emitter) checkEmptySequence() bool {
	if len(e.eventsQueue)-e.eventsHead < 2 {
		return false
	}
	return e.eventsQueue[e.eventsHead].Type == tok.EventSequenceStart &&
		e.eventsQueue[e.eventsHead+1].Type == tok.EventSequenceEnd
}

// Check if the next events represent an empty mapping.
func (e *Emitter) checkEmptyMapping() bool {
	if len(e.eventsQueue)-e.eventsHead < 2 {
		return false
	}
	return e.eventsQueue[e.eventsHead].Type == tok.EventMappingStart &&
		e.eventsQueue[e.eventsHead+1].Type == tok.EventMappingEnd
}

// Check if the next node can be expressed as a simple key.
func (e *Emitter) checkSimpleKey() bool {
	length := 0
	switch e.eventsQueue[e.eventsHead].Type {
	case tok.EventAlias:
		length += len(e.anchorData.Anchor)
	case tok.EventScalar:
		if e.scalarData.multiline {
			return false
		}
		length += len(e.anchorData.Anchor) +
			len(e.tagData.Handle) +
			len(e.tagData.Suffix) +
			len(e.scalarData.value)
	case tok.EventSequenceStart:
		if !e.checkEmptySequence() {
			return false
		}
		length += len(e.anchorData.Anchor) +
			len(e.tagData.Handle) +
			len(e.tagData.Suffix)
	case tok.EventMappingStart:
		if !e.checkEmptyMapping() {
			return false
		}
		length += len(e.anchorData.Anchor) +
			len(e.tagData.Handle) +
			len(e.tagData.Suffix)
	default:
		return false
	}
	return length <= 128
}
