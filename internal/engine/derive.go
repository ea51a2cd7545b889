package engine

import (
	"fmt"
	"strings"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// Summaries is the human-readable rendering of a build's derived mechanic
// state.
type Summaries struct {
	ActionText   string
	RangeText    string
	AreaText     string
	DurationText string
}

// unresolvedText is the fallback for synthesized instances whose catalog id
// no longer resolves; old saves must render, not throw.
const unresolvedText = "Unresolved"

// RecoverSelections is the load-time inverse of synthesis: it scans an
// instance list, turns synthesized-tagged instances back into control state,
// and returns everything else as leftovers for the visible part list.
//
// Postcondition: Pure. leftovers preserves input order and contains exactly
// the instances not consumed by a control; warnings name each synthesized
// instance that no longer resolves against snap.
func RecoverSelections(instances []PartInstance, snap *catalog.Snapshot) (MechanicSelections, DamageSpec, []PartInstance, []Warning) {
	sel := DefaultSelections()
	damage := DamageSpec{Type: DamageTypeNone}
	var leftovers []PartInstance
	var warnings []Warning

	m := snap.Mechanics()

	for _, inst := range instances {
		if inst.Origin != OriginSynthesized {
			leftovers = append(leftovers, inst)
			continue
		}
		if m == nil || snap.Part(inst.PartID) == nil {
			warnings = append(warnings, Warning{Kind: WarnUnresolvedPart, Ref: inst.PartID})
			continue
		}
		switch inst.Trigger {
		case TriggerAction:
			if action, ok := actionForID(m, inst.PartID); ok {
				sel.Action = action
			} else {
				warnings = append(warnings, Warning{Kind: WarnUnboundMechanic, Ref: inst.PartID})
			}
		case TriggerReaction:
			sel.Reaction = true
		case TriggerRange:
			sel.RangeSteps = inst.Levels[0]
			sel.RangeApplyDuration = inst.ApplyDuration
		case TriggerArea:
			if area, ok := areaForID(m, inst.PartID); ok {
				sel.Area = AreaSpec{Type: area, Level: inst.Levels[0]}
			} else {
				warnings = append(warnings, Warning{Kind: WarnUnboundMechanic, Ref: inst.PartID})
			}
		case TriggerDuration:
			if dur, ok := durationForID(m, inst.PartID); ok {
				sel.Duration.Type = dur
				if t, ok := m.TierByIndex(dur, inst.Levels[0]); ok {
					sel.Duration.Value = t.Value
				}
			} else {
				warnings = append(warnings, Warning{Kind: WarnUnboundMechanic, Ref: inst.PartID})
			}
		case TriggerFocus:
			sel.Duration.Focus = true
		case TriggerNoHarm:
			sel.Duration.NoHarm = true
		case TriggerEndsOnActivation:
			sel.Duration.EndsOnActivation = true
		case TriggerSustain:
			sel.Duration.SustainAP = inst.Levels[0]
		case TriggerDamageType:
			if dt, ok := damageTypeForID(m, inst.PartID); ok {
				damage.Type = dt
			} else {
				warnings = append(warnings, Warning{Kind: WarnUnboundMechanic, Ref: inst.PartID})
			}
		default:
			// Synthesized by a rule this version no longer knows: keep it
			// visible rather than silently dropping its cost.
			leftovers = append(leftovers, inst)
		}
	}

	return sel, damage, leftovers, warnings
}

// DeriveSummaries renders the derived mechanic summaries for a build by
// synthesizing its selections and reading the state back out of the
// instance list, so the rendering always reflects what is actually priced.
//
// Postcondition: Pure; never fails. Unresolvable mechanics render the
// fallback string and appear in the breakdown's warnings instead.
func DeriveSummaries(cfg *BuildConfig, snap *catalog.Snapshot) Summaries {
	synthesized, _ := SynthesizeMechanicParts(cfg.Mechanics, cfg.Damage, snap)
	instances := append(append([]PartInstance{}, synthesized...), cfg.Parts...)
	sel, _, _, _ := RecoverSelections(instances, snap)
	// Controls with nothing to synthesize (melee range, instant duration)
	// recover as defaults, which is exactly what should render.
	return RenderSummaries(sel, snap)
}

// RenderSummaries renders control state into display text.
func RenderSummaries(sel MechanicSelections, snap *catalog.Snapshot) Summaries {
	return Summaries{
		ActionText:   actionText(sel),
		RangeText:    rangeText(sel, snap),
		AreaText:     areaText(sel.Area),
		DurationText: durationText(sel.Duration, snap),
	}
}

func actionText(sel MechanicSelections) string {
	if sel.Reaction {
		return "Reaction"
	}
	switch sel.Action {
	case catalog.ActionBasic:
		return "Basic Action"
	case catalog.ActionQuick:
		return "Quick Action"
	case catalog.ActionFree:
		return "Free Action"
	case catalog.ActionLong:
		return "Long Action"
	}
	return unresolvedText
}

func rangeText(sel MechanicSelections, snap *catalog.Snapshot) string {
	if sel.RangeSteps <= 0 {
		return "1 space (melee)"
	}
	spaces := sel.RangeSteps
	if m := snap.Mechanics(); m != nil && m.RangeStepSpaces > 0 {
		spaces = sel.RangeSteps * m.RangeStepSpaces
	}
	return fmt.Sprintf("%d spaces", spaces)
}

func areaText(area AreaSpec) string {
	if area.Type == catalog.AreaNone || area.Type == "" {
		return "None"
	}
	name := strings.ToUpper(string(area.Type)[:1]) + string(area.Type)[1:]
	if area.Level > 0 {
		return fmt.Sprintf("%s %d", name, area.Level)
	}
	return name
}

func durationText(dur DurationSpec, snap *catalog.Snapshot) string {
	if dur.Type == catalog.DurationInstant || dur.Type == "" {
		return "Instant"
	}

	base := unresolvedText
	if m := snap.Mechanics(); m != nil && len(m.DurationTiers[dur.Type]) > 0 {
		_, tier := m.DurationTierFor(dur.Type, dur.Value)
		if tier.Label != "" {
			base = tier.Label
		} else {
			base = fmt.Sprintf("%d %s", tier.Value, dur.Type)
		}
	}

	parts := []string{base}
	if dur.SustainAP > 0 {
		parts = append(parts, fmt.Sprintf("Sustained %d AP", dur.SustainAP))
	}
	if dur.Focus {
		parts = append(parts, "Focus")
	}
	if dur.NoHarm {
		parts = append(parts, "No Harm or Adaptation")
	}
	if dur.EndsOnActivation {
		parts = append(parts, "Ends on Activation")
	}
	return strings.Join(parts, ", ")
}

func actionForID(m *catalog.MechanicMap, id string) (catalog.ActionType, bool) {
	for action, actionID := range m.ActionIDs {
		if actionID == id {
			return action, true
		}
	}
	return "", false
}

func areaForID(m *catalog.MechanicMap, id string) (catalog.AreaType, bool) {
	for area, areaID := range m.AreaIDs {
		if areaID == id {
			return area, true
		}
	}
	return "", false
}

func durationForID(m *catalog.MechanicMap, id string) (catalog.DurationType, bool) {
	for dur, durID := range m.DurationIDs {
		if durID == id {
			return dur, true
		}
	}
	return "", false
}

func damageTypeForID(m *catalog.MechanicMap, id string) (string, bool) {
	for dt, dtID := range m.DamageTypeIDs {
		if dtID == id {
			return dt, true
		}
	}
	return "", false
}
