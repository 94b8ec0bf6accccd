// Package formula parses and evaluates dice formulas such as
// "1d4 + @abilities.str.mod" against roll data.
package formula

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Evaluator rolls formulas with a dice roller.
type Evaluator struct {
	roller dice.Roller
}

// New creates an evaluator. A nil roller uses dice.DefaultRoller.
func New(roller dice.Roller) *Evaluator {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Evaluator{roller: roller}
}

// Evaluate parses and rolls the formula against the data.
func (e *Evaluator) Evaluate(src string, data map[string]any) (float64, error) {
	x, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return x.root.eval(&env{data: data, roller: e.roller})
}

// IntValue evaluates the formula to an integer, truncating toward zero.
// Invalid formulas are worth 0.
func (e *Evaluator) IntValue(src string, data map[string]any) int {
	if !Validate(src, data) {
		return 0
	}
	v, err := e.Evaluate(src, data)
	if err != nil {
		slog.Debug("formula evaluation failed", "formula", src, "error", err)
		return 0
	}
	return int(math.Trunc(v))
}

// Validate reports whether the formula parses and every data reference
// resolves against the data. Nothing is rolled.
func Validate(src string, data map[string]any) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	x, err := Parse(src)
	if err != nil {
		return false
	}
	_, err = x.root.eval(&env{data: data, validate: true})
	return err == nil
}

// ValidSyntax reports whether the formula is well formed. Data references
// are not resolved, so a formula stays valid while its data is missing.
func ValidSyntax(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	x, err := Parse(src)
	if err != nil {
		return false
	}
	_, err = x.root.eval(&env{validate: true, symbolic: true})
	return err == nil
}

// Static evaluates a formula that must not contain dice.
func Static(src string, data map[string]any) (float64, error) {
	x, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return x.root.eval(&env{data: data})
}

// Replace substitutes data references with their values, leaving the rest
// of the formula untouched. Unresolved references are left in place.
func Replace(src string, data map[string]any) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		if src[i] != '@' {
			b.WriteByte(src[i])
			continue
		}
		j := i + 1
		for j < len(src) && isRefChar(src[j]) {
			j++
		}
		value, ok := lookup(data, src[i+1:j])
		if !ok {
			b.WriteString(src[i:j])
		} else {
			b.WriteString(fmt.Sprint(value))
		}
		i = j - 1
	}
	return b.String()
}
