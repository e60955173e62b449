package yamlkit

// Interface decodes n into a plain Go value: a scalar's resolved type
// (bool, int, int64, uint64, float64, string, time.Time, or nil), a
// map[string]interface{} for a mapping (non-scalar keys fall back to
// their path string), or a []interface{} for a sequence. It is meant
// for handing a parsed tree to code that wants ordinary Go values
// instead of walking Node/NodePair directly — tests compare it with
// go-cmp for a readable diff on mismatch.
func (n *Node) Interface() (interface{}, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case ScalarNode:
		return decodeScalar(n)
	case SequenceNode:
		out := make([]interface{}, len(n.Items))
		for i, item := range n.Items {
			v, err := item.Interface()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case MappingNode:
		out := make(map[string]interface{}, len(n.Pairs))
		for _, p := range n.Pairs {
			key := p.Key.Value
			if p.Key.Kind != ScalarNode {
				key = string(p.Key.Path())
			}
			v, err := p.Value.Interface()
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	}
	return nil, newError(ErrAPIMisuse, "", n.pos, "node has unknown kind %d", n.Kind)
}
