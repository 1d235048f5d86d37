package document

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"logidconf/node"
)

const (
	tagNull  = "!!null"
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
	tagMerge = "!!merge"
)

// ParseYAML decodes a YAML document. Anchors and aliases are expanded and
// merge keys (<<) are applied. A key whose value is null counts as absent;
// an empty document is an empty mapping.
func ParseYAML(data []byte) (node.Node, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(doc.Content) == 0 || isNull(doc.Content[0]) {
		return node.NewMapping(), nil
	}

	return fromYAML(doc.Content[0])
}

func isNull(n *yaml.Node) bool {
	if n.Kind == yaml.AliasNode {
		return isNull(n.Alias)
	}

	return n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull
}

func fromYAML(n *yaml.Node) (node.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	case yaml.SequenceNode:
		seq := make(node.Sequence, 0, len(n.Content))

		for _, item := range n.Content {
			if isNull(item) {
				return nil, fmt.Errorf("line %d: %w: null list element", item.Line, ErrUnsupportedValue)
			}

			v, err := fromYAML(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, v)
		}

		return seq, nil
	case yaml.MappingNode:
		return fromYAMLMapping(n)
	default:
		return nil, fmt.Errorf("line %d: %w: node kind %v", n.Line, ErrUnsupportedValue, n.Kind)
	}
}

func fromYAMLMapping(n *yaml.Node) (node.Node, error) {
	var (
		pairs  = make([]node.Pair, 0, len(n.Content)/2)
		merged []node.Pair
		seen   = make(map[string]bool, len(n.Content)/2)
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == tagMerge {
			m, err := mergeSource(v)
			if err != nil {
				return nil, err
			}

			merged = append(merged, m...)

			continue
		}

		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %w: non-scalar mapping key", k.Line, ErrUnsupportedValue)
		}

		if seen[k.Value] {
			return nil, fmt.Errorf("line %d: %w %q", k.Line, ErrDuplicateKey, k.Value)
		}

		seen[k.Value] = true

		if isNull(v) {
			continue
		}

		val, err := fromYAML(v)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, node.Pair{Key: k.Value, Value: val})
	}

	// Explicit keys win over merged ones, earlier merge sources over later.
	for _, p := range merged {
		if !seen[p.Key] {
			seen[p.Key] = true
			pairs = append(pairs, p)
		}
	}

	return node.NewMapping(pairs...), nil
}

// mergeSource returns the pairs contributed by the value of a << key: a
// mapping or a list of mappings.
func mergeSource(v *yaml.Node) ([]node.Pair, error) {
	if v.Kind == yaml.AliasNode {
		return mergeSource(v.Alias)
	}

	switch v.Kind {
	case yaml.MappingNode:
		m, err := fromYAMLMapping(v)
		if err != nil {
			return nil, err
		}

		return m.(node.Mapping).Pairs(), nil
	case yaml.SequenceNode:
		var pairs []node.Pair

		for _, item := range v.Content {
			if item.Kind == yaml.AliasNode {
				item = item.Alias
			}

			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: %w: merge of a non-mapping", item.Line, ErrUnsupportedValue)
			}

			p, err := mergeSource(item)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, p...)
		}

		return pairs, nil
	default:
		return nil, fmt.Errorf("line %d: %w: merge of a non-mapping", v.Line, ErrUnsupportedValue)
	}
}

func fromYAMLScalar(n *yaml.Node) (node.Node, error) {
	switch tag := n.ShortTag(); tag {
	case tagStr, "!!timestamp", "!!binary":
		return node.String(n.Value), nil
	case tagInt:
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return node.Int(v), nil
	case tagFloat:
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return node.Float(v), nil
	case tagBool:
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return node.Bool(v), nil
	default:
		return nil, fmt.Errorf("line %d: %w: tag %s", n.Line, ErrUnsupportedValue, tag)
	}
}

// EncodeYAML writes a node tree as a YAML document with two-space indentation.
func EncodeYAML(n node.Node) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(toYAML(n)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

func toYAML(n node.Node) *yaml.Node {
	switch v := n.(type) {
	case node.Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: scalarTag(v), Value: yamlText(v)}
	case node.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			out.Content = append(out.Content, toYAML(item))
		}

		return out
	case node.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.Pairs() {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: p.Key},
				toYAML(p.Value))
		}

		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	}
}

func scalarTag(s node.Scalar) string {
	switch s.ScalarKind() {
	case node.ScalarInt:
		return tagInt
	case node.ScalarFloat:
		return tagFloat
	case node.ScalarBool:
		return tagBool
	default:
		return tagStr
	}
}

// yamlText renders a scalar so that it reads back with the same tag.
func yamlText(s node.Scalar) string {
	f, ok := s.AsFloat()
	if s.ScalarKind() != node.ScalarFloat || !ok {
		return s.Text()
	}

	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}

	return text
}
