package babonus

import (
	"github.com/KirkDiggler/babonus/internal/entities/scene"
)

// AuraDisposition selects which tokens an aura affects relative to its source.
type AuraDisposition int

// Aura dispositions
const (
	AuraDispositionEnemy AuraDisposition = -1
	AuraDispositionAlly  AuraDisposition = 1
	AuraDispositionAny   AuraDisposition = 2
)

// RangeUnlimited is the aura range that reaches every token on the scene.
const RangeUnlimited = -1

// Aura configures a bonus that propagates from a token or template.
type Aura struct {
	Enabled      bool                `json:"enabled,omitempty"`
	IsToken      bool                `json:"isToken,omitempty"`
	IsTemplate   bool                `json:"isTemplate,omitempty"`
	Range        int                 `json:"range,omitempty"`
	Self         bool                `json:"self,omitempty"`
	Disposition  AuraDisposition     `json:"disposition,omitempty"`
	Restrictions []scene.Restriction `json:"restrictions,omitempty"`
	Blockers     []string            `json:"blockers,omitempty"`
}

// IsTokenAura reports whether the aura emanates from the owner's token.
func (a Aura) IsTokenAura() bool {
	return a.Enabled && a.IsToken && (a.Range > 0 || a.Range == RangeUnlimited)
}

// IsTemplateAura reports whether the aura lives on templates created by the
// owning item.
func (a Aura) IsTemplateAura() bool {
	return a.Enabled && a.IsTemplate
}

// IsAura reports whether the bonus propagates at all.
func (a Aura) IsAura() bool {
	return a.IsTokenAura() || a.IsTemplateAura()
}

// AppliesTo reports whether the aura affects a token of the target
// disposition when emitted by a source of the given disposition.
func (a Aura) AppliesTo(source, target scene.Disposition) bool {
	switch a.Disposition {
	case AuraDispositionAlly:
		return source == target
	case AuraDispositionEnemy:
		return int(source)*int(target) == -1
	default:
		return true
	}
}

// IsBlocked reports whether any of the statuses suppresses the aura.
func (a Aura) IsBlocked(statuses []string) bool {
	for _, blocker := range a.Blockers {
		for _, status := range statuses {
			if blocker == status {
				return true
			}
		}
	}
	return false
}
