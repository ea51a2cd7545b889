package engine

import (
	"github.com/google/uuid"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// BuildConfig is one editing session's construct: a power, technique, or
// armament under composition. Parts holds explicit instances only; mechanic
// parts are synthesized on demand from Mechanics and never stored here.
type BuildConfig struct {
	ID          uuid.UUID
	Name        string
	Description string
	Parts       []PartInstance
	Properties  []PropertyInstance
	Mechanics   MechanicSelections
	Damage      DamageSpec
}

// NewBuildConfig returns an empty build with baseline mechanic selections,
// as created on creator entry.
func NewBuildConfig(name string) *BuildConfig {
	return &BuildConfig{
		ID:        uuid.New(),
		Name:      name,
		Mechanics: DefaultSelections(),
		Damage:    DamageSpec{Type: DamageTypeNone},
	}
}

// AddPart appends an explicit instance after resolving and validating its
// option levels against the snapshot. This is the mutation boundary: the
// aggregator assumes instances stored here are clean.
//
// Postcondition: Returns nil and appends, or an error (unknown part id,
// mechanic-only part, negative level, level on an absent slot).
func (b *BuildConfig) AddPart(snap *catalog.Snapshot, partID string, levels [3]int) error {
	part := snap.Part(partID)
	if part == nil {
		return &UnknownPartError{PartID: partID}
	}
	if part.Mechanic {
		return &MechanicPartError{PartID: partID}
	}
	inst := Explicit(partID, [3]int{})
	for slot, level := range levels {
		if level == 0 {
			continue
		}
		if err := inst.SetOptionLevel(part, slot, level); err != nil {
			return err
		}
	}
	b.Parts = append(b.Parts, inst)
	return nil
}

// RemovePart deletes the explicit instance at index i, preserving order.
//
// Postcondition: Returns false when i is out of range.
func (b *BuildConfig) RemovePart(i int) bool {
	if i < 0 || i >= len(b.Parts) {
		return false
	}
	b.Parts = append(b.Parts[:i], b.Parts[i+1:]...)
	return true
}

// BuildRecord is the serializable form of a BuildConfig: plain nested data
// with no engine-internal types beyond string tags, suitable for YAML files
// and JSONB columns.
type BuildRecord struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Parts       []PartInstance     `yaml:"parts,omitempty" json:"parts,omitempty"`
	Properties  []PropertyInstance `yaml:"properties,omitempty" json:"properties,omitempty"`
	Mechanics   MechanicSelections `yaml:"mechanics" json:"mechanics"`
	Damage      DamageSpec         `yaml:"damage" json:"damage"`
}

// Record serializes the build for persistence.
func (b *BuildConfig) Record() BuildRecord {
	return BuildRecord{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Parts:       b.Parts,
		Properties:  b.Properties,
		Mechanics:   b.Mechanics,
		Damage:      b.Damage,
	}
}

// Rehydrate rebuilds a BuildConfig from a stored record against the current
// snapshot. Part and property ids that no longer resolve are dropped with a
// warning, and malformed fields are repaired with defaults; rehydration
// never fails on stale content.
//
// Postcondition: The returned config references only ids present in snap,
// and warnings name every dropped reference and repaired field.
func Rehydrate(rec BuildRecord, snap *catalog.Snapshot) (*BuildConfig, []Warning) {
	var warnings []Warning

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		id = uuid.New()
		warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: "id"})
	}

	b := &BuildConfig{
		ID:          id,
		Name:        rec.Name,
		Description: rec.Description,
		Mechanics:   rec.Mechanics,
		Damage:      rec.Damage,
	}

	for _, inst := range rec.Parts {
		part := snap.Part(inst.PartID)
		if part == nil {
			warnings = append(warnings, Warning{Kind: WarnUnresolvedPart, Ref: inst.PartID})
			continue
		}
		if inst.Origin == "" {
			inst.Origin = OriginExplicit
		}
		for slot := range inst.Levels {
			if inst.Levels[slot] < 0 || (inst.Levels[slot] > 0 && !part.Options[slot].HasContent()) {
				inst.Levels[slot] = 0
				warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: inst.PartID})
			}
		}
		if inst.ApplyDuration && !part.DurationScaled {
			inst.ApplyDuration = false
			warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: inst.PartID})
		}
		b.Parts = append(b.Parts, inst)
	}

	for _, prop := range rec.Properties {
		if snap.Property(prop.PropertyID) == nil {
			warnings = append(warnings, Warning{Kind: WarnUnresolvedProperty, Ref: prop.PropertyID})
			continue
		}
		if prop.Level < 0 {
			prop.Level = 0
			warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: prop.PropertyID})
		}
		b.Properties = append(b.Properties, prop)
	}

	if b.Mechanics.Action == "" {
		b.Mechanics.Action = catalog.ActionBasic
		warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: "mechanics.action"})
	}
	if b.Mechanics.Area.Type == "" {
		b.Mechanics.Area.Type = catalog.AreaNone
	}
	if b.Mechanics.Duration.Type == "" {
		b.Mechanics.Duration.Type = catalog.DurationInstant
	}
	if b.Mechanics.RangeSteps < 0 {
		b.Mechanics.RangeSteps = 0
		warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: "mechanics.range_steps"})
	}
	if b.Mechanics.Duration.SustainAP < 0 || b.Mechanics.Duration.SustainAP > MaxSustainAP {
		b.Mechanics.Duration.SustainAP = 0
		warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: "mechanics.duration.sustain_ap"})
	}
	if b.Damage.Type == "" {
		b.Damage.Type = DamageTypeNone
		warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: "damage.type"})
	}
	if b.Damage.Amount < 0 {
		b.Damage.Amount = 0
		warnings = append(warnings, Warning{Kind: WarnMalformedField, Ref: "damage.amount"})
	}

	return b, warnings
}
