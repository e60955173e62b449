package yamlkit

import (
	"fmt"
	"time"

	"github.com/atomkit/yamlkit/internal/resolve"
)

// decodeScalar runs the schema resolver over a scalar node's tag and
// decoded text, returning the Go value its tag implies: bool, int,
// int64, uint64, float64, string, time.Time, or nil.
func decodeScalar(n *Node) (interface{}, error) {
	if n.Kind != ScalarNode {
		return nil, newError(ErrAPIMisuse, "", n.pos, "decodeScalar called on a %s node", n.Kind)
	}
	_, out, err := resolve.Resolve(n.Tag, n.Value)
	if err != nil {
		return nil, newError(ErrSemantic, "", n.pos, "%s", err.Error())
	}
	return out, nil
}

// StringAt resolves path from n and returns its scalar value as a
// string, regardless of its resolved schema type.
func (n *Node) StringAt(path Path) (string, error) {
	target := n.Lookup(path)
	if target == nil {
		return "", newError(ErrAPIMisuse, "", n.pos, "no node at path %q", path)
	}
	if target.Kind != ScalarNode {
		return "", newError(ErrAPIMisuse, "", target.pos, "node at path %q is a %s, not a scalar", path, target.Kind)
	}
	return target.Value, nil
}

// IntAt resolves path from n and returns its scalar value as an int64.
func (n *Node) IntAt(path Path) (int64, error) {
	target := n.Lookup(path)
	if target == nil {
		return 0, newError(ErrAPIMisuse, "", n.pos, "no node at path %q", path)
	}
	v, err := decodeScalar(target)
	if err != nil {
		return 0, err
	}
	switch i := v.(type) {
	case int:
		return int64(i), nil
	case int64:
		return i, nil
	case uint64:
		return int64(i), nil
	}
	return 0, newError(ErrSemantic, "", target.pos, "value at path %q is not an integer", path)
}

// FloatAt resolves path from n and returns its scalar value as a
// float64, accepting an integer-tagged scalar as well.
func (n *Node) FloatAt(path Path) (float64, error) {
	target := n.Lookup(path)
	if target == nil {
		return 0, newError(ErrAPIMisuse, "", n.pos, "no node at path %q", path)
	}
	v, err := decodeScalar(target)
	if err != nil {
		return 0, err
	}
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case uint64:
		return float64(f), nil
	}
	return 0, newError(ErrSemantic, "", target.pos, "value at path %q is not a number", path)
}

// BoolAt resolves path from n and returns its scalar value as a bool.
func (n *Node) BoolAt(path Path) (bool, error) {
	target := n.Lookup(path)
	if target == nil {
		return false, newError(ErrAPIMisuse, "", n.pos, "no node at path %q", path)
	}
	v, err := decodeScalar(target)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, newError(ErrSemantic, "", target.pos, "value at path %q is not a boolean", path)
	}
	return b, nil
}

// TimeAt resolves path from n and returns its scalar value as a
// time.Time, per the !!timestamp schema rules.
func (n *Node) TimeAt(path Path) (time.Time, error) {
	target := n.Lookup(path)
	if target == nil {
		return time.Time{}, newError(ErrAPIMisuse, "", n.pos, "no node at path %q", path)
	}
	v, err := decodeScalar(target)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, newError(ErrSemantic, "", target.pos, "value at path %q is not a timestamp", path)
	}
	return t, nil
}

// IsNullAt resolves path from n and reports whether it addresses a null
// scalar (an absent path is not considered null; it is an error).
func (n *Node) IsNullAt(path Path) (bool, error) {
	target := n.Lookup(path)
	if target == nil {
		return false, newError(ErrAPIMisuse, "", n.pos, "no node at path %q", path)
	}
	return target.Kind == ScalarNode && target.Tag == NullTag, nil
}

// MustStringAt is StringAt, panicking on error; convenient for tests and
// callers that have already validated the shape of a document.
func (n *Node) MustStringAt(path Path) string {
	v, err := n.StringAt(path)
	if err != nil {
		panic(fmt.Sprintf("yamlkit: %v", err))
	}
	return v
}
