package token

// DocumentState is the per-document YAML version and tag-directive
// context that parameterises parsing of a single document (spec §3
// Document state). It is shared by reference between the parser and any
// document built while it was current; mutating it (on a %TAG or %YAML
// directive) must copy-on-write if a prior document still references it.
type DocumentState struct {
	VersionMajor, VersionMinor int8
	VersionExplicit            bool

	TagDirectives []TagDirective
	TagsExplicit  bool

	StartImplicit bool
	EndImplicit   bool
}

// NewDocumentState returns a state carrying only the two built-in tag
// handles.
func NewDocumentState() *DocumentState {
	return &DocumentState{
		TagDirectives: append([]TagDirective(nil), DefaultTagDirectives...),
	}
}

// Clone returns a copy safe to mutate independently, used when a
// directive token arrives and an earlier document already shares this
// state.
func (d *DocumentState) Clone() *DocumentState {
	c := *d
	c.TagDirectives = append([]TagDirective(nil), d.TagDirectives...)
	return &c
}

// LookupTagHandle returns the prefix registered for handle, or ("",
// false) if it is undeclared.
func (d *DocumentState) LookupTagHandle(handle string) (string, bool) {
	for _, td := range d.TagDirectives {
		if string(td.Handle) == handle {
			return string(td.Prefix), true
		}
	}
	return "", false
}
