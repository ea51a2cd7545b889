// Package catalog defines the immutable reference content the costing engine
// reads: parts, armament properties, progression tables, and the mechanic-id
// mapping. The engine never mutates catalog data; it receives one Snapshot
// per computation.
package catalog

// PartKind distinguishes power parts from technique parts.
type PartKind string

const (
	PartKindPower     PartKind = "power"
	PartKindTechnique PartKind = "technique"
)

// Option is one leveled option slot on a Part. A slot has content when its
// description is non-empty or either delta is non-zero; slots without content
// must never receive a level.
type Option struct {
	Description    string  `yaml:"description"`
	Energy         float64 `yaml:"energy"`
	TrainingPoints float64 `yaml:"training_points"`
}

// HasContent reports whether the option slot is a real option rather than an
// absent slot.
func (o Option) HasContent() bool {
	return o.Description != "" || o.Energy != 0 || o.TrainingPoints != 0
}

// Part is a catalog building block for powers and techniques.
//
// When Percentage is true, Energy and the option Energy fields are
// multipliers in factor space (1.25 = +25%), not additive amounts; the
// aggregator applies them to the additive energy subtotal.
//
// Precondition: ID and Name must be non-empty after loading.
type Part struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Category       string    `yaml:"category"`
	Kind           PartKind  `yaml:"kind"`
	Energy         float64   `yaml:"energy"`
	TrainingPoints float64   `yaml:"training_points"`
	Options        [3]Option `yaml:"options"`

	// Mechanic marks parts that exist only to be synthesized from structured
	// mechanic selections, never hand-picked.
	Mechanic bool `yaml:"mechanic"`
	// Percentage marks parts whose energy fields are multipliers.
	Percentage bool `yaml:"percentage"`
	// DurationScaled marks parts whose instances may opt into duration
	// scaling via the instance ApplyDuration flag.
	DurationScaled bool `yaml:"duration_scaled"`
}

// OptionCount returns the number of option slots with content. Slots are
// filled front to back, so the count is also the highest usable slot index
// plus one.
func (p *Part) OptionCount() int {
	n := 0
	for _, o := range p.Options {
		if o.HasContent() {
			n++
		}
	}
	return n
}

// PropertyKind categorises armament properties.
type PropertyKind string

const (
	PropertyKindWeapon  PropertyKind = "weapon"
	PropertyKindArmor   PropertyKind = "armor"
	PropertyKindShield  PropertyKind = "shield"
	PropertyKindGeneral PropertyKind = "general"
)

// PropertyOption is the single option tier a Property may carry. Its
// CurrencyFactor composes multiplicatively per level.
type PropertyOption struct {
	Description    string  `yaml:"description"`
	ItemPoints     float64 `yaml:"item_points"`
	TrainingPoints float64 `yaml:"training_points"`
	CurrencyFactor float64 `yaml:"currency_factor"`
}

// HasContent reports whether the option tier is present.
func (o PropertyOption) HasContent() bool {
	return o.Description != "" || o.ItemPoints != 0 || o.TrainingPoints != 0 ||
		(o.CurrencyFactor != 0 && o.CurrencyFactor != 1)
}

// Property is a catalog armament modifier. CurrencyFactor is a multiplier on
// the armament's base price (1.0 = no change).
//
// Precondition: ID and Name must be non-empty after loading; CurrencyFactor
// must be > 0.
type Property struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Kind           PropertyKind   `yaml:"kind"`
	ItemPoints     float64        `yaml:"item_points"`
	TrainingPoints float64        `yaml:"training_points"`
	CurrencyFactor float64        `yaml:"currency_factor"`
	Option         PropertyOption `yaml:"option"`
}

// Archetype governs which progression column applies to a character or
// creature.
type Archetype string

const (
	ArchetypePower          Archetype = "power"
	ArchetypeMartial        Archetype = "martial"
	ArchetypePoweredMartial Archetype = "powered-martial"
)

// ValidArchetype reports whether a is one of the three known archetypes.
func ValidArchetype(a Archetype) bool {
	switch a {
	case ArchetypePower, ArchetypeMartial, ArchetypePoweredMartial:
		return true
	}
	return false
}

// ProgressionRow is one per-level row of a progression table. Rows are looked
// up by exact level; fractional levels use the level-1 policy in the
// progression package instead of interpolating.
type ProgressionRow struct {
	Level                  int `yaml:"level"`
	ProficiencyPoints      int `yaml:"proficiency_points"`
	ArmamentProficiencyCap int `yaml:"armament_proficiency_cap"`
	FeatPoints             int `yaml:"feat_points"`
	BonusFeats             int `yaml:"bonus_feats"`
}
