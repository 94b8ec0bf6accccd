package proficiency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/babonus/internal/errors"
)

//go:generate mockgen -destination=mock/mock_source.go -package=proficiencymock github.com/KirkDiggler/babonus/internal/proficiency CategorySource

// CategorySource lists the item keys of an equipment category.
type CategorySource interface {
	ListCategoryItems(ctx context.Context, category string) ([]string, error)
}

type srdBranch struct {
	category Category
	key      string
}

// srdCategories maps SRD equipment categories onto tree branches.
var srdCategories = map[string]srdBranch{
	"simple-weapons":      {CategoryWeapon, "sim"},
	"martial-weapons":     {CategoryWeapon, "mar"},
	"light-armor":         {CategoryArmor, "lgt"},
	"medium-armor":        {CategoryArmor, "med"},
	"heavy-armor":         {CategoryArmor, "hvy"},
	"shields":             {CategoryArmor, "shl"},
	"artisans-tools":      {CategoryTool, "art"},
	"musical-instruments": {CategoryTool, "music"},
	"gaming-sets":         {CategoryTool, "game"},
}

// SRDCategories returns the SRD category keys Hydrate reads, sorted.
func SRDCategories() []string {
	return []string{
		"artisans-tools", "gaming-sets", "heavy-armor", "light-armor", "martial-weapons",
		"medium-armor", "musical-instruments", "shields", "simple-weapons",
	}
}

var srdAliases = map[string]string{
	"crossbow-light":   "lightcrossbow",
	"crossbow-hand":    "handcrossbow",
	"crossbow-heavy":   "heavycrossbow",
	"hammer-light":     "lighthammer",
	"war-pick":         "warpick",
	"chain-shirt":      "chainshirt",
	"scale-mail":       "scalemail",
	"half-plate":       "halfplate",
	"ring-mail":        "ringmail",
	"chain-mail":       "chainmail",
	"studded-leather":  "studded",
	"dice-set":         "dice",
	"playing-card-set": "card",
}

// NormalizeKey turns an SRD item key into a tree key.
func NormalizeKey(srdKey string) string {
	key := strings.ToLower(strings.TrimSpace(srdKey))
	if alias, ok := srdAliases[key]; ok {
		return alias
	}
	for _, suffix := range []string{"s-tools", "-tools", "s-supplies", "-supplies", "s-utensils", "-set"} {
		if strings.HasSuffix(key, suffix) {
			key = strings.TrimSuffix(key, suffix)
			break
		}
	}
	return strings.ReplaceAll(key, "-", "")
}

// Hydrate extends the trees with SRD items missing from them and returns
// how many leaves were added. A failing category is logged and skipped.
func (t *Trees) Hydrate(ctx context.Context, src CategorySource) (int, error) {
	if src == nil {
		return 0, errors.InvalidArgument("category source is required")
	}

	added := 0
	for _, srdKey := range SRDCategories() {
		target := srdCategories[srdKey]
		items, err := src.ListCategoryItems(ctx, srdKey)
		if err != nil {
			if ctx.Err() != nil {
				return added, errors.Wrap(ctx.Err(), "hydration canceled")
			}
			slog.Warn("failed to load proficiency category", "category", srdKey, "error", err)
			continue
		}
		added += t.graft(target, items)
	}

	slog.Info("hydrated proficiency trees", "added", added)
	return added, nil
}

func (t *Trees) graft(target srdBranch, items []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	root, ok := t.roots[target.category]
	if !ok {
		return 0
	}
	parent := root.Find(target.key)
	if parent == nil {
		return 0
	}

	added := 0
	for _, item := range items {
		key := NormalizeKey(item)
		if key == "" || root.Find(key) != nil {
			continue
		}
		parent.Children = append(parent.Children, &Node{Key: key})
		added++
	}
	return added
}
