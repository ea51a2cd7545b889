package engine

import (
	"go.uber.org/zap"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// MaxSustainAP is the upper bound of the sustain modifier's action-point
// level.
const MaxSustainAP = 4

// Synthesizer translates basic-mechanic selections into part instances that
// price through the same path as hand-picked parts. The logger is optional
// and only used to note degraded synthesis.
type Synthesizer struct {
	log *zap.Logger
}

// NewSynthesizer returns a Synthesizer. A nil logger disables logging.
func NewSynthesizer(log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{log: log}
}

// emit appends a synthesized instance for the bound part id, or records a
// warning when the binding is empty or the part is missing from the
// snapshot. A partially stocked catalog degrades that one mechanic, never
// the whole computation.
func (s *Synthesizer) emit(out []PartInstance, warnings []Warning, snap *catalog.Snapshot,
	id string, trigger TriggerKind, levels [3]int, applyDuration bool) ([]PartInstance, []Warning) {
	if id == "" || snap.Part(id) == nil {
		s.log.Debug("mechanic part unavailable, skipping",
			zap.String("trigger", string(trigger)),
			zap.String("part_id", id))
		return out, append(warnings, Warning{Kind: WarnUnboundMechanic, Ref: string(trigger)})
	}
	inst := Synthesized(id, trigger, levels)
	inst.ApplyDuration = applyDuration
	return append(out, inst), warnings
}

// Synthesize maps the selections and damage spec onto mechanic part
// instances, in a fixed order: action, range, area, duration, duration
// modifiers, damage type.
//
// Precondition: snap.Mechanics() must be non-nil.
// Postcondition: Pure; every returned instance carries OriginSynthesized and
// a trigger tag, and warnings name each mechanic that could not synthesize.
func (s *Synthesizer) Synthesize(sel MechanicSelections, damage DamageSpec, snap *catalog.Snapshot) ([]PartInstance, []Warning) {
	m := snap.Mechanics()
	if m == nil {
		s.log.Debug("snapshot has no mechanic map, skipping synthesis")
		return nil, []Warning{{Kind: WarnUnboundMechanic, Ref: "mechanic_map"}}
	}
	var out []PartInstance
	var warnings []Warning

	// Reaction replaces the action part rather than stacking with it.
	if sel.Reaction {
		out, warnings = s.emit(out, warnings, snap, m.ReactionID, TriggerReaction, [3]int{}, false)
	} else {
		out, warnings = s.emit(out, warnings, snap, m.ActionIDs[sel.Action], TriggerAction, [3]int{}, false)
	}

	// Step 0 is melee: nothing to synthesize.
	if sel.RangeSteps > 0 {
		out, warnings = s.emit(out, warnings, snap, m.RangeID, TriggerRange,
			[3]int{sel.RangeSteps, 0, 0}, sel.RangeApplyDuration)
	}

	if sel.Area.Type != catalog.AreaNone && sel.Area.Type != "" {
		out, warnings = s.emit(out, warnings, snap, m.AreaIDs[sel.Area.Type], TriggerArea,
			[3]int{sel.Area.Level, 0, 0}, false)
	}

	out, warnings = s.synthesizeDuration(out, warnings, sel.Duration, snap)

	if damage.Type != DamageTypeNone && damage.Type != "" && damage.Amount > 0 {
		out, warnings = s.emit(out, warnings, snap, m.DamageTypeIDs[damage.Type], TriggerDamageType,
			[3]int{}, false)
	}

	return out, warnings
}

// synthesizeDuration handles the duration part and its four independent
// modifiers. Instant is the zero-cost baseline: no duration part and no
// modifiers.
func (s *Synthesizer) synthesizeDuration(out []PartInstance, warnings []Warning,
	dur DurationSpec, snap *catalog.Snapshot) ([]PartInstance, []Warning) {
	if dur.Type == catalog.DurationInstant || dur.Type == "" {
		return out, warnings
	}
	m := snap.Mechanics()

	// Option level is the tier index from the per-type table, never the raw
	// value: durations price by tier, not per unit. A type with no tier
	// table cannot price, so that one mechanic yields nothing.
	if len(m.DurationTiers[dur.Type]) == 0 {
		s.log.Debug("duration type has no tier table, skipping",
			zap.String("duration", string(dur.Type)))
		warnings = append(warnings, Warning{Kind: WarnUnboundMechanic, Ref: string(TriggerDuration)})
	} else {
		tier, _ := m.DurationTierFor(dur.Type, dur.Value)
		out, warnings = s.emit(out, warnings, snap, m.DurationIDs[dur.Type], TriggerDuration,
			[3]int{tier, 0, 0}, false)
	}

	if dur.Focus {
		out, warnings = s.emit(out, warnings, snap, m.FocusID, TriggerFocus, [3]int{}, false)
	}
	if dur.NoHarm {
		out, warnings = s.emit(out, warnings, snap, m.NoHarmID, TriggerNoHarm, [3]int{}, false)
	}
	if dur.EndsOnActivation {
		out, warnings = s.emit(out, warnings, snap, m.EndsOnActivationID, TriggerEndsOnActivation, [3]int{}, false)
	}
	if dur.SustainAP > 0 {
		ap := dur.SustainAP
		if ap > MaxSustainAP {
			ap = MaxSustainAP
		}
		out, warnings = s.emit(out, warnings, snap, m.SustainID, TriggerSustain, [3]int{ap, 0, 0}, false)
	}
	return out, warnings
}

// SynthesizeMechanicParts is the package-level entry point used by the UI
// boundary; it runs without a logger.
func SynthesizeMechanicParts(sel MechanicSelections, damage DamageSpec, snap *catalog.Snapshot) ([]PartInstance, []Warning) {
	return NewSynthesizer(nil).Synthesize(sel, damage, snap)
}
