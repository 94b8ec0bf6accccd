// Package proficiency resolves trait keys against the hierarchical
// proficiency trees, so that a broad proficiency such as "art" implies the
// specific tools beneath it.
package proficiency

import (
	"sync"

	"github.com/KirkDiggler/babonus/internal/entities/document"
)

// Category is a trait category with its own tree.
type Category string

// Trait categories
const (
	CategoryLanguages Category = document.TraitLanguages
	CategoryWeapon    Category = document.TraitWeapon
	CategoryArmor     Category = document.TraitArmor
	CategoryTool      Category = document.TraitTool
)

// Categories lists every category in canonical order.
var Categories = []Category{CategoryLanguages, CategoryWeapon, CategoryArmor, CategoryTool}

// Node is one proficiency in a tree.
type Node struct {
	Key      string  `json:"key"`
	Children []*Node `json:"children,omitempty"`
}

// Find returns the node with the key in the subtree below n.
func (n *Node) Find(key string) *Node {
	for _, child := range n.Children {
		if child.Key == key {
			return child
		}
		if found := child.Find(key); found != nil {
			return found
		}
	}
	return nil
}

func leaves(keys ...string) []*Node {
	out := make([]*Node, 0, len(keys))
	for _, k := range keys {
		out = append(out, &Node{Key: k})
	}
	return out
}

func branch(key string, children ...*Node) *Node {
	return &Node{Key: key, Children: children}
}

// Trees holds one ordered tree per category.
type Trees struct {
	mu    sync.RWMutex
	roots map[Category]*Node
}

// NewTrees returns the built-in trees.
func NewTrees() *Trees {
	return &Trees{roots: map[Category]*Node{
		CategoryLanguages: branch("",
			branch("standard", leaves("common", "dwarvish", "elvish", "giant", "gnomish", "goblin", "halfling", "orc")...),
			branch("exotic", append(leaves("aarakocra", "abyssal", "celestial", "deep", "draconic", "gith", "gnoll", "infernal"),
				branch("primordial", leaves("aquan", "auran", "ignan", "terran")...),
				&Node{Key: "sylvan"}, &Node{Key: "undercommon"})...),
			&Node{Key: "druidic"},
			&Node{Key: "cant"},
		),
		CategoryWeapon: branch("",
			branch("sim", leaves("club", "dagger", "greatclub", "handaxe", "javelin", "lighthammer", "mace",
				"quarterstaff", "sickle", "spear", "lightcrossbow", "dart", "shortbow", "sling")...),
			branch("mar", leaves("battleaxe", "flail", "glaive", "greataxe", "greatsword", "halberd", "lance",
				"longsword", "maul", "morningstar", "pike", "rapier", "scimitar", "shortsword", "trident",
				"warpick", "warhammer", "whip", "blowgun", "handcrossbow", "heavycrossbow", "longbow", "net")...),
		),
		CategoryArmor: branch("",
			branch("lgt", leaves("padded", "leather", "studded")...),
			branch("med", leaves("hide", "chainshirt", "scalemail", "breastplate", "halfplate")...),
			branch("hvy", leaves("ringmail", "chainmail", "splint", "plate")...),
			branch("shl", leaves("shield")...),
		),
		CategoryTool: branch("",
			branch("art", leaves("alchemist", "brewer", "calligrapher", "carpenter", "cartographer", "cobbler",
				"cook", "glassblower", "jeweler", "leatherworker", "mason", "painter", "potter", "smith",
				"tinker", "weaver", "woodcarver")...),
			&Node{Key: "disg"},
			&Node{Key: "forg"},
			branch("game", leaves("chess", "dice", "card")...),
			&Node{Key: "herb"},
			branch("music", leaves("bagpipes", "drum", "dulcimer", "flute", "horn", "lute", "lyre",
				"panflute", "shawm", "viol")...),
			&Node{Key: "navg"},
			&Node{Key: "pois"},
			&Node{Key: "thief"},
			branch("vehicle", leaves("air", "land", "space", "water")...),
		),
	}}
}

// ResolvePath returns the keys from the category root down to key, found
// depth first. The result is empty when the key is not in the tree.
func (t *Trees) ResolvePath(key string, category Category) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	root, ok := t.roots[category]
	if !ok || key == "" {
		return []string{}
	}
	path := findPath(root, key)
	if path == nil {
		return []string{}
	}
	return path
}

func findPath(n *Node, key string) []string {
	for _, child := range n.Children {
		if child.Key == key {
			return []string{child.Key}
		}
		if sub := findPath(child, key); sub != nil {
			return append([]string{child.Key}, sub...)
		}
	}
	return nil
}

// Root returns a copy of the category's root children for display.
func (t *Trees) Root(category Category) []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()

	root, ok := t.roots[category]
	if !ok {
		return nil
	}
	out := make([]*Node, len(root.Children))
	copy(out, root.Children)
	return out
}

// HasTrait reports whether the actor has the trait directly or through a
// broader proficiency whose subtree contains it.
func (t *Trees) HasTrait(actor *document.Actor, trait string, category Category) bool {
	if actor == nil || trait == "" {
		return false
	}
	owned := actor.Traits[string(category)]
	for _, v := range owned {
		if v == trait {
			return true
		}
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	root, ok := t.roots[category]
	if !ok {
		return false
	}
	for _, v := range owned {
		node := root.Find(v)
		if node != nil && node.Find(trait) != nil {
			return true
		}
	}
	return false
}

// SpeaksLanguage reports whether the actor speaks the language.
func (t *Trees) SpeaksLanguage(actor *document.Actor, trait string) bool {
	return t.HasTrait(actor, trait, CategoryLanguages)
}

// HasWeaponProficiency reports whether the actor is proficient with the weapon.
func (t *Trees) HasWeaponProficiency(actor *document.Actor, trait string) bool {
	return t.HasTrait(actor, trait, CategoryWeapon)
}

// HasArmorProficiency reports whether the actor is proficient with the armor.
func (t *Trees) HasArmorProficiency(actor *document.Actor, trait string) bool {
	return t.HasTrait(actor, trait, CategoryArmor)
}

// HasToolProficiency reports whether the actor is proficient with the tool.
func (t *Trees) HasToolProficiency(actor *document.Actor, trait string) bool {
	return t.HasTrait(actor, trait, CategoryTool)
}
