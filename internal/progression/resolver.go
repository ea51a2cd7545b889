// Package progression resolves per-level budgets from the catalog's
// progression tables and computes the level-1 vital minimums. It supplies
// point budgets only; allocating proficiency points between power and
// martial is caller state and may overspend.
package progression

import (
	"fmt"
	"math"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// vitalMultiplier scales the level-1 ability contribution to the health and
// energy floors.
const vitalMultiplier = 2

// Budget is the per-level point budget for one archetype.
type Budget struct {
	Archetype              catalog.Archetype
	Level                  int
	ProficiencyPoints      int
	ArmamentProficiencyCap int
	FeatPoints             int
	BonusFeats             int
}

// VitalMinimums are the health and energy floors derived from abilities.
type VitalMinimums struct {
	Health int
	Energy int
}

// Allocation is a caller-owned split of proficiency points between power and
// martial proficiency.
type Allocation struct {
	Power   int
	Martial int
}

// Resolver answers budget queries against one catalog snapshot.
type Resolver struct {
	snap *catalog.Snapshot
}

// NewResolver returns a Resolver bound to the given snapshot.
//
// Precondition: snap must be non-nil.
func NewResolver(snap *catalog.Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

// Resolve looks up the exact-level row for the archetype.
//
// Precondition: arch must be a known archetype; level must be >= 1.
// Postcondition: Returns the row's budget or a non-nil error; rows are never
// interpolated.
func (r *Resolver) Resolve(arch catalog.Archetype, level int) (Budget, error) {
	if !catalog.ValidArchetype(arch) {
		return Budget{}, fmt.Errorf("progression: unknown archetype %q", arch)
	}
	if level < 1 {
		return Budget{}, fmt.Errorf("progression: level must be >= 1, got %d", level)
	}
	row, ok := r.snap.ProgressionRow(arch, level)
	if !ok {
		return Budget{}, fmt.Errorf("progression: no row for archetype %q at level %d", arch, level)
	}
	return Budget{
		Archetype:              arch,
		Level:                  level,
		ProficiencyPoints:      row.ProficiencyPoints,
		ArmamentProficiencyCap: row.ArmamentProficiencyCap,
		FeatPoints:             row.FeatPoints,
		BonusFeats:             row.BonusFeats,
	}, nil
}

// Remaining returns the unallocated proficiency points under the budget.
// Negative means the caller overspent, which is reported, not rejected.
func (b Budget) Remaining(a Allocation) int {
	return b.ProficiencyPoints - a.Power - a.Martial
}

// VitalFloor computes the minimum health and energy for a creature with the
// given vitality and highest non-vitality ability.
//
// At level 1 the floor is (highestOther + vitality) x 2 for non-negative
// vitality; a negative vitality contributes its raw penalty exactly once and
// is never multiplied. Whole levels past 1 each add
// highestOther + max(vitality, 0), so the penalty does not compound.
// Fractional levels reuse the level-1 formula for the partial advancement
// rather than interpolating between rows.
//
// Postcondition: Health and Energy are >= 1.
func VitalFloor(level float64, vitality, highestOther int) VitalMinimums {
	base := highestOther * vitalMultiplier
	if vitality >= 0 {
		base += vitality * vitalMultiplier
	} else {
		base += vitality
	}

	wholeLevels := int(math.Floor(level))
	if wholeLevels < 1 {
		wholeLevels = 1
	}
	perLevel := highestOther
	if vitality > 0 {
		perLevel += vitality
	}
	total := base + (wholeLevels-1)*perLevel

	if total < 1 {
		total = 1
	}
	return VitalMinimums{Health: total, Energy: total}
}
