package formula

import (
	"strconv"

	"github.com/KirkDiggler/babonus/internal/errors"
)

// Expression is a parsed formula.
type Expression struct {
	source string
	root   node
}

// Source returns the formula text the expression was parsed from.
func (x *Expression) Source() string { return x.source }

// Parse parses a dice and arithmetic formula. Data references are kept
// symbolic and only resolved on evaluation.
func Parse(src string) (*Expression, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().kind == tokenEOF {
		return nil, errors.InvalidArgument("empty formula")
	}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, errors.InvalidArgumentf("unexpected %q at %d", tok.text, tok.pos)
	}
	return &Expression{source: src, root: root}, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.text[0], left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.text[0], left: left, right: right}
	}
}

func (p *parser) unary() (node, error) {
	tok := p.peek()
	if tok.kind == tokenOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if tok.text == "-" {
			return &negateNode{operand: operand}, nil
		}
		return operand, nil
	}
	return p.postfix()
}

// postfix parses a primary optionally followed by a dice term, so that
// "2d6", "(@prof)d4" and "@level d8" all roll.
func (p *parser) postfix() (node, error) {
	if p.peek().kind == tokenDice {
		return p.dice(&numberNode{value: 1})
	}
	count, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokenDice {
		return p.dice(count)
	}
	return count, nil
}

func (p *parser) dice(count node) (node, error) {
	tok := p.next()
	if len(tok.text) > 1 {
		faces, err := strconv.Atoi(tok.text[1:])
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid dice %q at %d", tok.text, tok.pos)
		}
		return &diceNode{count: count, faces: &numberNode{value: float64(faces)}}, nil
	}
	faces, err := p.primary()
	if err != nil {
		return nil, err
	}
	return &diceNode{count: count, faces: faces}, nil
}

func (p *parser) primary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return &numberNode{value: tok.value}, nil
	case tokenRef:
		return &refNode{path: tok.text}, nil
	case tokenLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, errors.InvalidArgumentf("expected ) at %d", closing.pos)
		}
		return inner, nil
	case tokenIdent:
		return p.call(tok)
	case tokenEOF:
		return nil, errors.InvalidArgument("unexpected end of formula")
	default:
		return nil, errors.InvalidArgumentf("unexpected %q at %d", tok.text, tok.pos)
	}
}

func (p *parser) call(name token) (node, error) {
	fn, ok := functions[name.text]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown function %q", name.text)
	}
	if open := p.next(); open.kind != tokenLParen {
		return nil, errors.InvalidArgumentf("expected ( after %s", name.text)
	}

	var args []node
	if p.peek().kind != tokenRParen {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokenComma {
				break
			}
			p.next()
		}
	}
	if closing := p.next(); closing.kind != tokenRParen {
		return nil, errors.InvalidArgumentf("expected ) at %d", closing.pos)
	}
	if len(args) < fn.minArgs || (fn.maxArgs > 0 && len(args) > fn.maxArgs) {
		return nil, errors.InvalidArgumentf("wrong number of arguments to %s", name.text)
	}
	return &callNode{name: name.text, fn: fn.apply, args: args}, nil
}
