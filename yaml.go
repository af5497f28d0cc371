package coll

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAML renders v as a YAML document. Maps keep their iteration order.
func ToYAML(v any) ([]byte, error) {
	n, err := yamlNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

// FromYAML parses a YAML document into containers: mappings become *Map
// (in document order) and sequences become *List. An empty document yields
// nil.
func FromYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return fromYAMLNode(&doc)
}

func yamlNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case Key:
		return yamlKeyNode(v), nil
	case Object:
		return nil, objectNotStorable(v)
	case Dictionary:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, val := range v.Entries() {
			vn, err := yamlNode(val)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, yamlKeyNode(k), vn)
		}
		return n, nil
	case Collection:
		return yamlSeqNode(v.ToArray())
	case []any:
		return yamlSeqNode(v)
	case []byte:
		return yamlNode(string(v))
	}

	switch compositeKind(v) {
	case tagSequence:
		vals, err := valuesOf("ToYAML", v)
		if err != nil {
			return nil, err
		}
		return yamlSeqNode(vals)
	case tagMap:
		m, err := NewMap(v)
		if err != nil {
			return nil, err
		}
		return yamlNode(m)
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

func yamlSeqNode(vals []any) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, val := range vals {
		vn, err := yamlNode(val)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, vn)
	}
	return n, nil
}

func yamlKeyNode(k Key) *yaml.Node {
	if k.IsInt() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(k.Int())}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k.String()}
}

func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return &List{items: items}, nil
	case yaml.MappingNode:
		m := newMapCap(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			rawKey, err := fromYAMLNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			k, err := KeyOf(rawKey)
			if err != nil {
				return nil, &Error{Op: "FromYAML", Kind: ErrInvalidArgument, Msg: "line " + strconv.Itoa(n.Content[i].Line), Err: err}
			}
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.put(k, v)
		}
		return m, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return normalizeNumber(v), nil
	}
}

// MarshalYAML implements yaml.Marshaler.
func (l *List) MarshalYAML() (any, error)       { return yamlNode(l) }
func (l *LinkedList) MarshalYAML() (any, error) { return yamlNode(l) }
func (m *Map) MarshalYAML() (any, error)        { return yamlNode(m) }
func (s *Set) MarshalYAML() (any, error)        { return yamlNode(s) }

var _ yaml.Marshaler = (*Map)(nil)
