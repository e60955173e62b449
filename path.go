package yamlkit

import (
	"strconv"
	"strings"
)

// Path is a JSON-Pointer-flavored address into a node tree: a sequence
// of mapping keys and sequence indexes, written "/a/b/0/c". A leading
// slash is optional; "~0" and "~1" escape a literal "~" and "/" inside a
// key, matching RFC 6901.
type Path string

func (p Path) tokens() []string {
	s := strings.TrimPrefix(string(p), "/")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		parts[i] = part
	}
	return parts
}

// Lookup walks path from root, returning the addressed node, or nil if
// any segment is absent, out of range, or addresses into a scalar.
func (n *Node) Lookup(path Path) *Node {
	cur := n
	for _, tok := range path.tokens() {
		if cur == nil {
			return nil
		}
		switch cur.Kind {
		case MappingNode:
			cur = cur.Get(tok)
		case SequenceNode:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(cur.Items) {
				return nil
			}
			cur = cur.Items[i]
		default:
			return nil
		}
	}
	return cur
}

// Path returns the address of n relative to its document root, walking
// parent pointers. It returns "" for a root or detached node.
func (n *Node) Path() Path {
	var segs []string
	cur := n
	for cur != nil && cur.parent != nil {
		p := cur.parent
		switch p.Kind {
		case SequenceNode:
			for i, item := range p.Items {
				if item == cur {
					segs = append(segs, strconv.Itoa(i))
					break
				}
			}
		case MappingNode:
			for _, pair := range p.Pairs {
				if pair.Value == cur {
					segs = append(segs, escapeSegment(pair.Key.Value))
					break
				}
			}
		}
		cur = p
	}
	if len(segs) == 0 {
		return ""
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return Path("/" + strings.Join(segs, "/"))
}

func escapeSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
