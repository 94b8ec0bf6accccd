// Package filters holds the predicates that decide whether a bonus applies to
// a roll. Every filter is registered under the key it is stored with on a
// bonus, so new filters can be added without touching the engine.
package filters

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/errors"
)

// Predicate tests a roll context. It must not mutate the context.
type Predicate func(rc *roll.Context) bool

// Filter compiles a stored filter payload into a predicate.
type Filter interface {
	// Key is the filter key on a bonus.
	Key() string
	// AppliesTo reports whether the filter is meaningful for the bonus type.
	AppliesTo(t babonus.Type) bool
	// Compile parses a payload. A nil predicate means the payload is empty
	// and imposes no constraint.
	Compile(raw json.RawMessage) (Predicate, error)
	// Cost orders evaluation; cheap filters run first.
	Cost() int
}

// Costs used by the built-in filters.
const (
	CostList       = 1
	CostStructured = 2
	CostFormula    = 5
	CostScript     = 10
)

// Registry maps filter keys to filters.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

// NewRegistry creates a registry holding the filters.
func NewRegistry(filters ...Filter) (*Registry, error) {
	r := &Registry{filters: make(map[string]Filter)}
	for _, f := range filters {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a filter. Keys are unique.
func (r *Registry) Register(f Filter) error {
	if f == nil || f.Key() == "" {
		return errors.InvalidArgument("filter key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.filters[f.Key()]; ok {
		return errors.Newf(errors.CodeAlreadyExists, "filter %s already registered", f.Key())
	}
	r.filters[f.Key()] = f
	return nil
}

// Get returns the filter registered under key.
func (r *Registry) Get(key string) (Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.filters[key]
	return f, ok
}

// Keys returns the registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.filters))
	for key := range r.filters {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// KeysFor returns the keys of the filters meaningful for the bonus type.
func (r *Registry) KeysFor(t babonus.Type) []string {
	var out []string
	for _, key := range r.Keys() {
		if f, ok := r.Get(key); ok && f.AppliesTo(t) {
			out = append(out, key)
		}
	}
	return out
}

type step struct {
	key  string
	cost int
	pred Predicate
}

// Compiled is a bonus with its populated filters ready to evaluate.
type Compiled struct {
	Bonus *babonus.Bonus
	steps []step
}

// Compile parses every populated filter on the bonus. An unknown key or a
// payload the filter cannot read is an error.
func (r *Registry) Compile(b *babonus.Bonus) (*Compiled, error) {
	if b == nil {
		return nil, errors.InvalidArgument("bonus is required")
	}

	keys := make([]string, 0, len(b.Filters))
	for key := range b.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	c := &Compiled{Bonus: b}
	for _, key := range keys {
		f, ok := r.Get(key)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown filter %q", key)
		}
		pred, err := f.Compile(b.Filters[key])
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid filter "+key)
		}
		if pred == nil {
			continue
		}
		if !f.AppliesTo(b.Type()) {
			pred = never
		}
		c.steps = append(c.steps, step{key: key, cost: f.Cost(), pred: pred})
	}

	sort.SliceStable(c.steps, func(i, j int) bool {
		return c.steps[i].cost < c.steps[j].cost
	})
	return c, nil
}

// Keys returns the keys of the populated filters in evaluation order.
func (c *Compiled) Keys() []string {
	out := make([]string, 0, len(c.steps))
	for _, s := range c.steps {
		out = append(out, s.key)
	}
	return out
}

// Match reports whether every populated filter accepts the context.
func (c *Compiled) Match(rc *roll.Context) bool {
	for _, s := range c.steps {
		if !s.pred(rc) {
			return false
		}
	}
	return true
}

// Strip removes every filter that imposes no constraint from the bonus.
// Unknown keys and unreadable payloads are errors.
func (r *Registry) Strip(b *babonus.Bonus) error {
	for key, raw := range b.Filters {
		populated, err := r.Populated(key, raw)
		if err != nil {
			return err
		}
		if !populated {
			delete(b.Filters, key)
		}
	}
	return nil
}

// Populated reports whether a payload constrains anything.
func (r *Registry) Populated(key string, raw json.RawMessage) (bool, error) {
	f, ok := r.Get(key)
	if !ok {
		return false, errors.InvalidArgumentf("unknown filter %q", key)
	}
	pred, err := f.Compile(raw)
	if err != nil {
		return false, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid filter "+key)
	}
	return pred != nil, nil
}

func never(*roll.Context) bool { return false }

func isEmpty(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "{}", "[]", `""`:
		return true
	default:
		return false
	}
}

func appliesTo(types []babonus.Type, t babonus.Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, known := range types {
		if known == t {
			return true
		}
	}
	return false
}
