package yamlkit

// maxAliasDepth bounds alias-expansion recursion; a document nesting
// aliases deeper than this is almost certainly cyclic rather than
// legitimately deep, so Resolve reports it as an error instead of
// recursing until the stack overflows.
const maxAliasDepth = 256

// Resolve expands every alias and "<<" merge key in the document's tree
// in place, in the two passes §4.6 describes: aliases are replaced with
// a deep copy of their target first, then merge keys are expanded into
// their host mapping with first-writer-wins semantics. Resolve is
// idempotent; calling it again on an already-resolved document is a
// no-op.
func (d *Document) Resolve() error {
	if d.Resolved {
		return nil
	}
	if d.Root == nil {
		d.Resolved = true
		return nil
	}
	if err := d.expandAliases(d.Root, make(map[*Node]bool), 0); err != nil {
		return err
	}
	root, err := d.expandMerges(d.Root)
	if err != nil {
		return err
	}
	d.Root = root
	d.Resolved = true
	return nil
}

func (d *Document) expandAliases(n *Node, onStack map[*Node]bool, depth int) error {
	if depth > maxAliasDepth {
		return newError(ErrSemantic, d.source, n.pos, "alias nesting exceeds the maximum depth of %d", maxAliasDepth)
	}
	switch n.Kind {
	case SequenceNode:
		for i, item := range n.Items {
			if item.Kind == ScalarNode && item.Style == StyleAlias {
				resolved, err := d.resolveAlias(item, onStack, depth)
				if err != nil {
					return err
				}
				resolved.parent = n
				n.Items[i] = resolved
				continue
			}
			if err := d.expandAliases(item, onStack, depth+1); err != nil {
				return err
			}
		}
	case MappingNode:
		for i, p := range n.Pairs {
			if p.Key.Kind == ScalarNode && p.Key.Style == StyleAlias {
				resolved, err := d.resolveAlias(p.Key, onStack, depth)
				if err != nil {
					return err
				}
				resolved.parent = n
				n.Pairs[i].Key = resolved
			} else if err := d.expandAliases(p.Key, onStack, depth+1); err != nil {
				return err
			}
			if p.Value.Kind == ScalarNode && p.Value.Style == StyleAlias {
				resolved, err := d.resolveAlias(p.Value, onStack, depth)
				if err != nil {
					return err
				}
				resolved.parent = n
				n.Pairs[i].Value = resolved
			} else if err := d.expandAliases(p.Value, onStack, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Document) resolveAlias(alias *Node, onStack map[*Node]bool, depth int) (*Node, error) {
	target := d.Anchor(alias.Value)
	if target == nil {
		return nil, newError(ErrSemantic, d.source, alias.pos, "undefined alias %q", alias.Value)
	}
	if onStack[target] {
		return nil, newError(ErrSemantic, d.source, alias.pos, "alias %q forms a cycle", alias.Value)
	}
	onStack[target] = true
	defer delete(onStack, target)

	dup := target.Copy()
	if err := d.expandAliases(dup, onStack, depth+1); err != nil {
		return nil, err
	}
	return dup, nil
}

// expandMerges expands "<<" merge keys, returning the (possibly
// replaced) node, since a merge-only mapping root can, in principle,
// have its pair list rebuilt wholesale.
func (d *Document) expandMerges(n *Node) (*Node, error) {
	switch n.Kind {
	case SequenceNode:
		for i, item := range n.Items {
			replaced, err := d.expandMerges(item)
			if err != nil {
				return nil, err
			}
			n.Items[i] = replaced
		}
		return n, nil
	case MappingNode:
		var merges []*Node
		kept := n.Pairs[:0]
		for _, p := range n.Pairs {
			if _, err := d.expandMerges(p.Value); err != nil {
				return nil, err
			}
			if p.Key.Kind == ScalarNode && p.Key.Tag == MergeTag {
				merges = append(merges, p.Value)
				continue
			}
			kept = append(kept, p)
		}
		n.Pairs = kept

		existing := make(map[string]bool, len(n.Pairs))
		for _, p := range n.Pairs {
			if p.Key.Kind == ScalarNode {
				existing[p.Key.Value] = true
			}
		}

		for _, m := range merges {
			sources := []*Node{m}
			if m.Kind == SequenceNode {
				sources = m.Items
			}
			for _, src := range sources {
				if src.Kind != MappingNode {
					return nil, newError(ErrSemantic, d.source, m.pos, "merge value must be a mapping or sequence of mappings")
				}
				for _, p := range src.Pairs {
					if p.Key.Kind == ScalarNode && existing[p.Key.Value] {
						continue
					}
					n.AppendPair(p.Key.Copy(), p.Value.Copy())
					if p.Key.Kind == ScalarNode {
						existing[p.Key.Value] = true
					}
				}
			}
		}
		return n, nil
	}
	return n, nil
}
