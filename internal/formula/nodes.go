package formula

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/babonus/internal/errors"
)

const (
	maxDiceCount = 1000
	maxRefDepth  = 8
)

type env struct {
	data map[string]any
	// roller is nil when dice are not allowed.
	roller dice.Roller
	depth  int
	// validate checks structure and references without rolling.
	validate bool
	// symbolic skips reference resolution; every reference counts as 1.
	symbolic bool
}

type node interface {
	eval(e *env) (float64, error)
}

type numberNode struct {
	value float64
}

func (n *numberNode) eval(_ *env) (float64, error) { return n.value, nil }

type negateNode struct {
	operand node
}

func (n *negateNode) eval(e *env) (float64, error) {
	v, err := n.operand.eval(e)
	return -v, err
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n *binaryNode) eval(e *env) (float64, error) {
	l, err := n.left.eval(e)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(e)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			if e.validate {
				return 0, nil
			}
			return 0, errors.InvalidArgument("division by zero")
		}
		return l / r, nil
	}
	return 0, errors.Internalf("unknown operator %c", n.op)
}

type diceNode struct {
	count node
	faces node
}

func (n *diceNode) eval(e *env) (float64, error) {
	count, err := n.count.eval(e)
	if err != nil {
		return 0, err
	}
	faces, err := n.faces.eval(e)
	if err != nil {
		return 0, err
	}
	c, f := int(count), int(faces)
	if c < 0 || c > maxDiceCount {
		return 0, errors.InvalidArgumentf("invalid dice count %d", c)
	}
	if f < 1 {
		return 0, errors.InvalidArgumentf("invalid dice faces %d", f)
	}
	if e.validate {
		return float64(c), nil
	}
	if e.roller == nil {
		return 0, errors.InvalidArgument("dice are not allowed here")
	}
	if c == 0 {
		return 0, nil
	}
	rolls, err := e.roller.RollN(c, f)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %dd%d", c, f)
	}
	total := 0
	for _, r := range rolls {
		total += r
	}
	return float64(total), nil
}

type refNode struct {
	path string
}

func (n *refNode) eval(e *env) (float64, error) {
	if e.symbolic {
		return 1, nil
	}
	value, ok := lookup(e.data, n.path)
	if !ok {
		return 0, errors.InvalidArgumentf("unresolved reference @%s", n.path)
	}
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, errors.InvalidArgumentf("reference @%s is not numeric", n.path)
		}
		return f, nil
	case string:
		if e.depth >= maxRefDepth {
			return 0, errors.InvalidArgumentf("reference @%s nests too deeply", n.path)
		}
		sub, err := Parse(v)
		if err != nil {
			return 0, errors.Wrapf(err, "reference @%s", n.path)
		}
		inner := &env{data: e.data, roller: e.roller, depth: e.depth + 1, validate: e.validate}
		return sub.root.eval(inner)
	default:
		return 0, errors.InvalidArgumentf("reference @%s is not numeric", n.path)
	}
}

// lookup walks a dotted path through nested maps.
func lookup(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

type callNode struct {
	name string
	fn   func(args []float64) float64
	args []node
}

func (n *callNode) eval(e *env) (float64, error) {
	values := make([]float64, 0, len(n.args))
	for _, arg := range n.args {
		v, err := arg.eval(e)
		if err != nil {
			return 0, err
		}
		values = append(values, v)
	}
	return n.fn(values), nil
}

type function struct {
	minArgs int
	maxArgs int
	apply   func(args []float64) float64
}

var functions = map[string]function{
	"floor": {1, 1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {1, 1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"round": {1, 1, func(a []float64) float64 { return math.Round(a[0]) }},
	"abs":   {1, 1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"min": {1, 0, func(a []float64) float64 {
		out := a[0]
		for _, v := range a[1:] {
			out = math.Min(out, v)
		}
		return out
	}},
	"max": {1, 0, func(a []float64) float64 {
		out := a[0]
		for _, v := range a[1:] {
			out = math.Max(out, v)
		}
		return out
	}},
}
