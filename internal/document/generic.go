package document

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/pelletier/go-toml/v2"

	"logidconf/node"
)

// ParseJSON decodes a JSON document. Mapping keys come out sorted; a
// repeated key keeps its last value.
func ParseJSON(data []byte) (node.Node, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if v == nil {
		return node.NewMapping(), nil
	}

	return fromAny(v)
}

// ParseTOML decodes a TOML document. Mapping keys come out sorted.
func ParseTOML(data []byte) (node.Node, error) {
	var v map[string]any

	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return fromAny(v)
}

// fromAny converts the generic values produced by the JSON and TOML
// decoders. Null map values count as absent, like in YAML.
func fromAny(v any) (node.Node, error) {
	switch x := v.(type) {
	case string:
		return node.String(x), nil
	case bool:
		return node.Bool(x), nil
	case int64:
		return node.Int(x), nil
	case int:
		return node.Int(int64(x)), nil
	case float64:
		return node.Float(x), nil
	case json.Number:
		return fromNumber(x)
	case []any:
		seq := make(node.Sequence, 0, len(x))

		for i, item := range x {
			if item == nil {
				return nil, fmt.Errorf("%w: null list element at index %d", ErrUnsupportedValue, i)
			}

			n, err := fromAny(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, n)
		}

		return seq, nil
	case map[string]any:
		pairs := make([]node.Pair, 0, len(x))

		for _, k := range slices.Sorted(maps.Keys(x)) {
			if x[k] == nil {
				continue
			}

			n, err := fromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}

			pairs = append(pairs, node.Pair{Key: k, Value: n})
		}

		return node.NewMapping(pairs...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// fromNumber handles the numbers the JSON decoder could not fit in an
// int64 or float64 without losing digits.
func fromNumber(num json.Number) (node.Node, error) {
	if i, err := num.Int64(); err == nil {
		return node.Int(i), nil
	}

	if strings.ContainsAny(string(num), ".eE") {
		// Overflow still yields the signed infinity.
		f, _ := strconv.ParseFloat(string(num), 64)
		return node.Float(f), nil
	}

	return nil, fmt.Errorf("integer %s %w", num, ErrOutOfRange)
}

// EncodeJSON writes a node tree as indented JSON with sorted keys.
func EncodeJSON(n node.Node) []byte {
	return []byte(oj.JSON(ToAny(n), &oj.Options{Indent: 2, Sort: true}))
}

// ToAny converts a node tree into plain Go values: map[string]any,
// []any, string, int64, float64 and bool.
func ToAny(n node.Node) any {
	switch v := n.(type) {
	case node.Scalar:
		switch v.ScalarKind() {
		case node.ScalarInt:
			i, _ := v.AsInt()
			return i
		case node.ScalarFloat:
			f, _ := v.AsFloat()
			return f
		case node.ScalarBool:
			b, _ := v.AsBool()
			return b
		default:
			s, _ := v.AsString()
			return s
		}
	case node.Sequence:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToAny(item)
		}

		return out
	case node.Mapping:
		out := make(map[string]any, v.Len())
		for _, p := range v.Pairs() {
			out[p.Key] = ToAny(p.Value)
		}

		return out
	default:
		return nil
	}
}
