// Package engine implements the build cost and mechanic derivation engine:
// composing selected catalog parts into priced line items, synthesizing
// mechanic parts from structured selections, aggregating totals, and
// deriving human-readable summaries. Every entry point is a pure function of
// (build configuration, catalog snapshot).
package engine

import (
	"fmt"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// Origin tags a part instance as user-picked or synthesized. Synthesized
// instances price identically to explicit ones but never appear in the
// user-facing part list; list and aggregate operations branch on the tag,
// never on part names.
type Origin string

const (
	OriginExplicit    Origin = "explicit"
	OriginSynthesized Origin = "synthesized"
)

// TriggerKind identifies which basic-mechanic control produced a synthesized
// instance, so the display resolver can invert it back into control state.
type TriggerKind string

const (
	TriggerNone             TriggerKind = ""
	TriggerAction           TriggerKind = "action"
	TriggerReaction         TriggerKind = "reaction"
	TriggerRange            TriggerKind = "range"
	TriggerArea             TriggerKind = "area"
	TriggerDuration         TriggerKind = "duration"
	TriggerFocus            TriggerKind = "focus"
	TriggerNoHarm           TriggerKind = "no_harm"
	TriggerEndsOnActivation TriggerKind = "ends_on_activation"
	TriggerSustain          TriggerKind = "sustain"
	TriggerDamageType       TriggerKind = "damage_type"
)

// PartInstance is one selected or synthesized occurrence of a catalog part.
// Levels holds the per-slot option levels; ApplyDuration opts the instance
// into duration scaling when the build's duration is non-instant.
type PartInstance struct {
	PartID        string `yaml:"part_id" json:"part_id"`
	Levels        [3]int `yaml:"levels" json:"levels"`
	ApplyDuration bool   `yaml:"apply_duration,omitempty" json:"apply_duration,omitempty"`

	Origin  Origin      `yaml:"origin" json:"origin"`
	Trigger TriggerKind `yaml:"trigger,omitempty" json:"trigger,omitempty"`
}

// Explicit returns a user-picked instance of the given part.
func Explicit(partID string, levels [3]int) PartInstance {
	return PartInstance{PartID: partID, Levels: levels, Origin: OriginExplicit}
}

// Synthesized returns a mechanic instance carrying its trigger tag.
func Synthesized(partID string, trigger TriggerKind, levels [3]int) PartInstance {
	return PartInstance{PartID: partID, Levels: levels, Origin: OriginSynthesized, Trigger: trigger}
}

// PropertyInstance is one applied armament property. Level is the option
// tier count (0 = base property only).
type PropertyInstance struct {
	PropertyID string `yaml:"property_id" json:"property_id"`
	Level      int    `yaml:"level" json:"level"`
}

// DamageSpec holds the damage controls. Amount and DieSize are stored for
// display only; only Type participates in mechanic synthesis.
type DamageSpec struct {
	Amount  int    `yaml:"amount" json:"amount"`
	DieSize int    `yaml:"die_size" json:"die_size"`
	Type    string `yaml:"type" json:"type"`
}

// DamageTypeNone disables damage synthesis.
const DamageTypeNone = "none"

// DurationSpec holds the duration controls: the type, the raw value in the
// type's unit, and the four independent modifiers. SustainAP is 0-4 action
// points; 0 means sustain is off.
type DurationSpec struct {
	Type             catalog.DurationType `yaml:"type" json:"type"`
	Value            int                  `yaml:"value" json:"value"`
	Focus            bool                 `yaml:"focus,omitempty" json:"focus,omitempty"`
	NoHarm           bool                 `yaml:"no_harm,omitempty" json:"no_harm,omitempty"`
	EndsOnActivation bool                 `yaml:"ends_on_activation,omitempty" json:"ends_on_activation,omitempty"`
	SustainAP        int                  `yaml:"sustain_ap" json:"sustain_ap"`
}

// AreaSpec holds the area-of-effect controls.
type AreaSpec struct {
	Type  catalog.AreaType `yaml:"type" json:"type"`
	Level int              `yaml:"level" json:"level"`
}

// MechanicSelections is the structured basic-mechanic control state. It is
// the second representation of the synthesized part set: the two must never
// double-count.
type MechanicSelections struct {
	Action   catalog.ActionType `yaml:"action" json:"action"`
	Reaction bool               `yaml:"reaction,omitempty" json:"reaction,omitempty"`
	// RangeSteps 0 means melee. Each step >= 1 levels the range part once.
	RangeSteps         int          `yaml:"range_steps" json:"range_steps"`
	RangeApplyDuration bool         `yaml:"range_apply_duration,omitempty" json:"range_apply_duration,omitempty"`
	Area               AreaSpec     `yaml:"area" json:"area"`
	Duration           DurationSpec `yaml:"duration" json:"duration"`
}

// DefaultSelections returns the zero-cost baseline: basic action, melee, no
// area, instant duration.
func DefaultSelections() MechanicSelections {
	return MechanicSelections{
		Action:   catalog.ActionBasic,
		Area:     AreaSpec{Type: catalog.AreaNone},
		Duration: DurationSpec{Type: catalog.DurationInstant},
	}
}

// SetOptionLevel sets the level of one option slot on an explicit instance,
// validating at the mutation boundary so the aggregator can assume clean
// input.
//
// Precondition: part must be the resolved catalog part for inst.PartID.
// Postcondition: Returns nil and updates the slot, or an error when slot is
// out of range, level is negative, or the slot has no content.
func (inst *PartInstance) SetOptionLevel(part *catalog.Part, slot, level int) error {
	if slot < 0 || slot >= len(inst.Levels) {
		return fmt.Errorf("engine: option slot must be 0-%d, got %d", len(inst.Levels)-1, slot)
	}
	if level < 0 {
		return fmt.Errorf("engine: option level must be >= 0, got %d", level)
	}
	if level > 0 && !part.Options[slot].HasContent() {
		return fmt.Errorf("engine: part %q has no option in slot %d", part.ID, slot)
	}
	inst.Levels[slot] = level
	return nil
}

// SetApplyDuration toggles duration scaling on an instance.
//
// Precondition: part must be the resolved catalog part for inst.PartID.
// Postcondition: Returns an error when the part is not duration-scalable.
func (inst *PartInstance) SetApplyDuration(part *catalog.Part, on bool) error {
	if on && !part.DurationScaled {
		return fmt.Errorf("engine: part %q does not scale with duration", part.ID)
	}
	inst.ApplyDuration = on
	return nil
}
