// Package script implements the custom-script filter: a Lua expression or
// chunk evaluated with the roll bound as globals.
package script

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/filters"
	"github.com/KirkDiggler/babonus/internal/proficiency"
)

// Config holds the configuration for the script filter
type Config struct {
	Trees *proficiency.Trees
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Trees == nil {
		vb.RequiredField("Trees")
	}
	return vb.Build()
}

// Filter evaluates customScripts payloads.
type Filter struct {
	trees *proficiency.Trees
}

var _ filters.Filter = (*Filter)(nil)

// New creates a script filter.
func New(cfg *Config) (*Filter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Filter{trees: cfg.Trees}, nil
}

// Key implements filters.Filter
func (f *Filter) Key() string { return filters.KeyCustomScripts }

// AppliesTo implements filters.Filter
func (f *Filter) AppliesTo(babonus.Type) bool { return true }

// Cost implements filters.Filter
func (f *Filter) Cost() int { return filters.CostScript }

// Compile implements filters.Filter. The payload is a string holding either
// an expression or a chunk that returns a value.
func (f *Filter) Compile(raw json.RawMessage) (filters.Predicate, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var src string
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, errors.Wrap(err, "custom script must be a string")
	}
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	chunk, err := compile(src)
	if err != nil {
		return nil, err
	}

	return func(rc *roll.Context) bool {
		ok, err := f.run(chunk, rc)
		if err != nil {
			slog.Debug("custom script failed", "error", err)
			return false
		}
		return ok
	}, nil
}

// Evaluate runs a script against the roll. Failures are returned rather
// than treated as false.
func (f *Filter) Evaluate(src string, rc *roll.Context) (bool, error) {
	chunk, err := compile(src)
	if err != nil {
		return false, err
	}
	return f.run(chunk, rc)
}

// compile picks the expression form when it parses, the raw chunk
// otherwise.
func compile(src string) (string, error) {
	l := lua.NewState()
	if err := lua.LoadString(l, "return "+src); err == nil {
		return "return " + src, nil
	}
	l.SetTop(0)
	if err := lua.LoadString(l, src); err != nil {
		return "", errors.InvalidArgumentf("invalid custom script: %v", err)
	}
	return src, nil
}

// instructionBudget caps the Lua instructions one script may execute.
const instructionBudget = 1_000_000

func (f *Filter) run(chunk string, rc *roll.Context) (bool, error) {
	l := newState()
	f.bind(l, rc)

	if err := lua.LoadString(l, chunk); err != nil {
		return false, errors.Wrap(err, "failed to load custom script")
	}
	lua.SetDebugHook(l, func(l *lua.State, _ lua.Debug) {
		lua.Errorf(l, "instruction budget exhausted")
	}, lua.MaskCount, instructionBudget)
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return false, errors.Wrap(err, "custom script raised an error")
	}
	return l.ToBoolean(-1), nil
}

// newState opens a sandbox without io, os, package loading or randomness.
func newState() *lua.State {
	l := lua.NewState()
	for _, lib := range []struct {
		name string
		open lua.Function
	}{
		{"_G", lua.BaseOpen},
		{"string", lua.StringOpen},
		{"table", lua.TableOpen},
		{"math", lua.MathOpen},
	} {
		lua.Require(l, lib.name, lib.open, true)
		l.Pop(1)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "require"} {
		l.PushNil()
		l.SetGlobal(name)
	}
	l.Global("math")
	l.PushNil()
	l.SetField(-2, "random")
	l.PushNil()
	l.SetField(-2, "randomseed")
	l.Pop(1)
	return l
}

func (f *Filter) bind(l *lua.State, rc *roll.Context) {
	push(l, rc.Data)
	l.SetGlobal("rollData")

	push(l, actorData(rc.Actor))
	l.SetGlobal("actor")

	push(l, actorData(rc.Target))
	l.SetGlobal("target")

	push(l, itemData(rc.Item))
	l.SetGlobal("item")

	push(l, tokenData(rc.Token))
	l.SetGlobal("token")

	push(l, map[string]any{
		"throwType":       rc.Details.ThrowType,
		"isConcentration": rc.Details.IsConcentration,
		"abilityId":       rc.Details.AbilityID,
		"skillId":         rc.Details.SkillID,
		"toolId":          rc.Details.ToolID,
		"denomination":    rc.Details.Denomination,
		"isCritical":      rc.Details.IsCritical,
		"kind":            string(rc.Kind),
	})
	l.SetGlobal("details")

	f.bindHelpers(l, rc)
}

func (f *Filter) bindHelpers(l *lua.State, rc *roll.Context) {
	lua.NewLibrary(l, []lua.RegistryFunction{
		{Name: "hasStatus", Function: func(l *lua.State) int {
			id := lua.CheckString(l, 1)
			l.PushBoolean(rc.Actor != nil && rc.Actor.HasStatus(id))
			return 1
		}},
		{Name: "targetHasStatus", Function: func(l *lua.State) int {
			id := lua.CheckString(l, 1)
			l.PushBoolean(rc.Target != nil && rc.Target.HasStatus(id))
			return 1
		}},
		{Name: "hasTrait", Function: func(l *lua.State) int {
			category := lua.CheckString(l, 1)
			key := lua.CheckString(l, 2)
			l.PushBoolean(f.trees.HasTrait(rc.Actor, key, proficiency.Category(category)))
			return 1
		}},
		{Name: "resolvePath", Function: func(l *lua.State) int {
			key := lua.CheckString(l, 1)
			category := lua.CheckString(l, 2)
			push(l, f.trees.ResolvePath(key, proficiency.Category(category)))
			return 1
		}},
	})
	l.SetGlobal("babonus")
}

func actorData(a *document.Actor) map[string]any {
	if a == nil {
		return nil
	}
	data := a.RollData()
	data["id"] = a.ID
	data["type"] = a.Type
	data["statuses"] = a.StatusIDs()
	data["creatureTypes"] = a.Details.CreatureTypes
	if pct, ok := a.HealthPercentage(); ok {
		data["health"] = pct
	}
	return data
}

func itemData(i *document.Item) map[string]any {
	if i == nil {
		return nil
	}
	return map[string]any{
		"id":          i.ID,
		"name":        i.Name,
		"type":        i.Type,
		"actionType":  i.System.ActionType,
		"baseItem":    i.System.BaseItem,
		"school":      i.System.School,
		"level":       i.System.Level,
		"properties":  i.System.Properties,
		"damageTypes": i.DamageTypes(),
		"equipped":    i.System.Equipped,
		"attuned":     i.System.Attuned,
		"ability":     i.AbilityID(),
	}
}

func tokenData(t *scene.Token) map[string]any {
	if t == nil {
		return nil
	}
	return map[string]any{
		"id":          t.ID,
		"x":           t.X,
		"y":           t.Y,
		"width":       t.Width,
		"height":      t.Height,
		"elevation":   t.Elevation,
		"disposition": int(t.Disposition),
	}
}

// push converts a Go value into a Lua value on top of the stack.
func push(l *lua.State, v any) {
	switch x := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(x)
	case string:
		l.PushString(x)
	case int:
		l.PushInteger(x)
	case int64:
		l.PushInteger(int(x))
	case float64:
		l.PushNumber(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			l.PushString(x.String())
			return
		}
		l.PushNumber(n)
	case []string:
		l.CreateTable(len(x), 0)
		for i, s := range x {
			l.PushString(s)
			l.RawSetInt(-2, i+1)
		}
	case []any:
		l.CreateTable(len(x), 0)
		for i, item := range x {
			push(l, item)
			l.RawSetInt(-2, i+1)
		}
	case map[string]any:
		if x == nil {
			l.PushNil()
			return
		}
		l.CreateTable(0, len(x))
		for key, item := range x {
			push(l, item)
			l.SetField(-2, key)
		}
	default:
		data, err := json.Marshal(x)
		if err != nil {
			l.PushNil()
			return
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			l.PushNil()
			return
		}
		push(l, generic)
	}
}
