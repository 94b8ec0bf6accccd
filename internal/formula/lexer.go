package formula

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/babonus/internal/errors"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenDice
	tokenRef
	tokenIdent
	tokenOp
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	pos   int
}

// lex splits a formula into tokens. Flavor text in square brackets is
// dropped.
func lex(src string) ([]token, error) {
	var out []token
	i := 0
	for i < len(src) {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '[':
			end := strings.IndexByte(src[i:], ']')
			if end < 0 {
				return nil, errors.InvalidArgumentf("unterminated flavor at %d", i)
			}
			i += end + 1
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			value, err := parseNumber(src[start:i])
			if err != nil {
				return nil, errors.InvalidArgumentf("invalid number %q at %d", src[start:i], start)
			}
			out = append(out, token{kind: tokenNumber, text: src[start:i], value: value, pos: start})
		case c == '@':
			start := i
			i++
			for i < len(src) && isRefChar(src[i]) {
				i++
			}
			if i == start+1 {
				return nil, errors.InvalidArgumentf("empty data reference at %d", start)
			}
			out = append(out, token{kind: tokenRef, text: src[start+1 : i], pos: start})
		case c == '+' || c == '-' || c == '*' || c == '/':
			out = append(out, token{kind: tokenOp, text: string(c), pos: i})
			i++
		case c == '(':
			out = append(out, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			out = append(out, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case c == ',':
			out = append(out, token{kind: tokenComma, text: ",", pos: i})
			i++
		case unicode.IsLetter(c):
			start := i
			for i < len(src) && (unicode.IsLetter(rune(src[i])) || src[i] >= '0' && src[i] <= '9') {
				i++
			}
			word := src[start:i]
			if isDiceWord(word) {
				out = append(out, token{kind: tokenDice, text: strings.ToLower(word), pos: start})
				continue
			}
			out = append(out, token{kind: tokenIdent, text: strings.ToLower(word), pos: start})
		default:
			return nil, errors.InvalidArgumentf("unexpected character %q at %d", c, i)
		}
	}
	out = append(out, token{kind: tokenEOF, pos: len(src)})
	return out, nil
}

func isRefChar(c byte) bool {
	return c == '.' || c == '_' || c == '-' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// isDiceWord matches "d" followed by an optional face count, e.g. d20 or d.
func isDiceWord(word string) bool {
	if word[0] != 'd' && word[0] != 'D' {
		return false
	}
	for _, r := range word[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
