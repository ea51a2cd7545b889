package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ActionType is a basic-mechanic action selection.
type ActionType string

const (
	ActionBasic ActionType = "basic"
	ActionQuick ActionType = "quick"
	ActionFree  ActionType = "free"
	ActionLong  ActionType = "long"
)

// AreaType is a basic-mechanic area-of-effect selection. AreaNone synthesizes
// nothing.
type AreaType string

const (
	AreaNone     AreaType = "none"
	AreaCone     AreaType = "cone"
	AreaSphere   AreaType = "sphere"
	AreaCylinder AreaType = "cylinder"
	AreaLine     AreaType = "line"
	AreaTrail    AreaType = "trail"
)

// DurationType is a basic-mechanic duration selection. DurationInstant is the
// zero-cost baseline and synthesizes nothing.
type DurationType string

const (
	DurationInstant   DurationType = "instant"
	DurationRound     DurationType = "round"
	DurationMinute    DurationType = "minute"
	DurationHour      DurationType = "hour"
	DurationDay       DurationType = "day"
	DurationPermanent DurationType = "permanent"
)

// DurationTier is one entry of a duration type's tier table: a raw value in
// the type's unit and the display label for that tier. The option level of a
// synthesized duration part is the 1-based index of the chosen tier, not the
// raw value.
type DurationTier struct {
	Value int    `yaml:"value"`
	Label string `yaml:"label"`
}

// MechanicMap binds semantic mechanic kinds to concrete catalog part ids.
// It is loaded once from a data file so the id table is content, not code.
type MechanicMap struct {
	// ActionIDs maps each ActionType to its action-mechanic part id.
	ActionIDs map[ActionType]string `yaml:"actions"`
	// ReactionID replaces the action part when the reaction flag is set.
	ReactionID string `yaml:"reaction"`
	// RangeID is the range-mechanic part; option level = step count.
	RangeID string `yaml:"range"`
	// RangeStepSpaces converts a step count to spaces for display.
	RangeStepSpaces int `yaml:"range_step_spaces"`
	// AreaIDs maps each non-none AreaType to its area-mechanic part id.
	AreaIDs map[AreaType]string `yaml:"areas"`
	// DurationIDs maps each non-instant DurationType to its part id.
	DurationIDs map[DurationType]string `yaml:"durations"`
	// DurationTiers holds the ordered tier table per non-instant type.
	DurationTiers map[DurationType][]DurationTier `yaml:"duration_tiers"`
	// Duration modifier part ids. Sustain is leveled 0-4 AP; the others are
	// flat flags.
	FocusID            string `yaml:"focus"`
	NoHarmID           string `yaml:"no_harm"`
	EndsOnActivationID string `yaml:"ends_on_activation"`
	SustainID          string `yaml:"sustain"`
	// DamageTypeIDs maps each damage type name to its flat mechanic part id.
	DamageTypeIDs map[string]string `yaml:"damage_types"`
}

// LoadMechanicMap reads and validates a mechanic mapping file.
//
// Precondition: path must point to a YAML file conforming to the mapping
// schema.
// Postcondition: Returns a validated MechanicMap or a non-nil error.
func LoadMechanicMap(path string) (*MechanicMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mechanic map %s: %w", path, err)
	}
	var m MechanicMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing mechanic map %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating mechanic map %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the mapping invariants: every bound id is non-empty, every
// duration type with an id has a tier table, and tier values strictly
// increase.
//
// Postcondition: Returns nil if the mapping is usable, or one error listing
// all violations.
func (m *MechanicMap) Validate() error {
	var errs []string

	for action, id := range m.ActionIDs {
		if id == "" {
			errs = append(errs, fmt.Sprintf("actions.%s id must not be empty", action))
		}
	}
	for area, id := range m.AreaIDs {
		if area == AreaNone {
			errs = append(errs, "areas must not bind an id to 'none'")
		}
		if id == "" {
			errs = append(errs, fmt.Sprintf("areas.%s id must not be empty", area))
		}
	}
	for dur, id := range m.DurationIDs {
		if dur == DurationInstant {
			errs = append(errs, "durations must not bind an id to 'instant'")
			continue
		}
		if id == "" {
			errs = append(errs, fmt.Sprintf("durations.%s id must not be empty", dur))
		}
		tiers := m.DurationTiers[dur]
		if len(tiers) == 0 {
			errs = append(errs, fmt.Sprintf("durations.%s has no tier table", dur))
			continue
		}
		for i := 1; i < len(tiers); i++ {
			if tiers[i].Value <= tiers[i-1].Value {
				errs = append(errs, fmt.Sprintf(
					"duration_tiers.%s values must strictly increase, got %d after %d",
					dur, tiers[i].Value, tiers[i-1].Value))
			}
		}
	}
	if m.RangeStepSpaces < 1 {
		errs = append(errs, fmt.Sprintf("range_step_spaces must be >= 1, got %d", m.RangeStepSpaces))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("mechanic map validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DurationTierFor returns the 1-based tier index for a raw duration value:
// the first tier whose value is >= v, clamped to the top tier. The second
// return is the matched tier.
//
// Precondition: dur must have a non-empty tier table (enforced by Validate).
func (m *MechanicMap) DurationTierFor(dur DurationType, v int) (int, DurationTier) {
	tiers := m.DurationTiers[dur]
	for i, t := range tiers {
		if v <= t.Value {
			return i + 1, t
		}
	}
	last := len(tiers) - 1
	return last + 1, tiers[last]
}

// TierByIndex returns the tier at the given 1-based index, or false when the
// index is out of range for the type's table.
func (m *MechanicMap) TierByIndex(dur DurationType, idx int) (DurationTier, bool) {
	tiers := m.DurationTiers[dur]
	if idx < 1 || idx > len(tiers) {
		return DurationTier{}, false
	}
	return tiers[idx-1], true
}
