package filters

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/proficiency"
)

// ListCriteria is the payload of a text-list filter.
type ListCriteria struct {
	Values  []string `json:"values"`
	Exclude bool     `json:"exclude,omitempty"`
}

// ParseList reads a list payload. It accepts an object with values and an
// exclude flag, a bare array, or a semicolon separated string. Values are
// trimmed and de-duplicated.
func ParseList(raw json.RawMessage) (ListCriteria, error) {
	var out ListCriteria
	if isEmpty(raw) {
		return out, nil
	}

	var values []string
	switch strings.TrimSpace(string(raw))[0] {
	case '{':
		var obj struct {
			Values  json.RawMessage `json:"values"`
			Exclude bool            `json:"exclude"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return out, errors.Wrap(err, "malformed list criteria")
		}
		inner, err := ParseList(obj.Values)
		if err != nil {
			return out, err
		}
		values = inner.Values
		out.Exclude = obj.Exclude
	case '[':
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			return out, errors.Wrap(err, "malformed list criteria")
		}
		for _, item := range items {
			switch v := item.(type) {
			case string:
				values = append(values, v)
			case float64:
				values = append(values, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				return out, errors.InvalidArgumentf("unsupported list value %v", item)
			}
		}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return out, errors.Wrap(err, "malformed list criteria")
		}
		values = strings.Split(s, ";")
	default:
		return out, errors.InvalidArgumentf("unsupported list criteria %s", string(raw))
	}

	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out.Values = append(out.Values, v)
	}
	return out, nil
}

// Contains reports whether v is one of the values.
func (l ListCriteria) Contains(v string) bool {
	for _, value := range l.Values {
		if value == v {
			return true
		}
	}
	return false
}

// Overlaps reports whether any of vs is one of the values.
func (l ListCriteria) Overlaps(vs []string) bool {
	for _, v := range vs {
		if l.Contains(v) {
			return true
		}
	}
	return false
}

// ValuesFunc extracts the context values a list filter compares. The second
// return is false when the roll carries no such data.
type ValuesFunc func(rc *roll.Context) ([]string, bool)

// ListFilter is a filter over a set of strings with an optional exclude
// mode.
type ListFilter struct {
	key        string
	types      []babonus.Type
	canExclude bool
	values     ValuesFunc

	// trees widens context values to the branches above them, so a
	// criterion of "mar" matches a longsword.
	trees    *proficiency.Trees
	category proficiency.Category
}

var _ Filter = (*ListFilter)(nil)

// NewListFilter creates a list filter applying to the types. No types means
// every type.
func NewListFilter(key string, canExclude bool, values ValuesFunc, types ...babonus.Type) *ListFilter {
	return &ListFilter{key: key, types: types, canExclude: canExclude, values: values}
}

// WithTree makes context values match any branch above them in the tree.
func (f *ListFilter) WithTree(trees *proficiency.Trees, category proficiency.Category) *ListFilter {
	f.trees = trees
	f.category = category
	return f
}

// Key implements Filter
func (f *ListFilter) Key() string { return f.key }

// AppliesTo implements Filter
func (f *ListFilter) AppliesTo(t babonus.Type) bool { return appliesTo(f.types, t) }

// Cost implements Filter
func (f *ListFilter) Cost() int { return CostList }

// Compile implements Filter
func (f *ListFilter) Compile(raw json.RawMessage) (Predicate, error) {
	criteria, err := ParseList(raw)
	if err != nil {
		return nil, err
	}
	if len(criteria.Values) == 0 {
		return nil, nil
	}
	if !f.canExclude {
		criteria.Exclude = false
	}

	return func(rc *roll.Context) bool {
		values, ok := f.values(rc)
		if !ok {
			return false
		}
		return f.overlaps(criteria, values) != criteria.Exclude
	}, nil
}

func (f *ListFilter) overlaps(criteria ListCriteria, values []string) bool {
	if f.trees == nil {
		return criteria.Overlaps(values)
	}
	for _, v := range values {
		path := f.trees.ResolvePath(v, f.category)
		if len(path) == 0 {
			path = []string{v}
		}
		if criteria.Overlaps(path) {
			return true
		}
	}
	return false
}
