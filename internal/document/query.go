package document

import (
	"fmt"

	"github.com/ohler55/ojg/jp"

	"logidconf/node"
)

// Query evaluates a JSONPath expression, e.g.
// "$.devices[?(@.name == 'mouse')].dpi", against a node tree and returns
// the matching values as plain Go values.
func Query(n node.Node, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}

	return x.Get(ToAny(n)), nil
}
