package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtholloran/runeforge/internal/catalog"
	"github.com/jtholloran/runeforge/internal/engine"
)

// TestAddPart_Valid verifies a known part with valid levels is appended as
// an explicit instance.
func TestAddPart_Valid(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("test")

	require.NoError(t, build.AddPart(snap, "part-warding", [3]int{2, 1, 0}))
	require.Len(t, build.Parts, 1)
	assert.Equal(t, engine.OriginExplicit, build.Parts[0].Origin)
	assert.Equal(t, [3]int{2, 1, 0}, build.Parts[0].Levels)
}

// TestAddPart_UnknownID verifies the mutation boundary rejects ids missing
// from the snapshot.
func TestAddPart_UnknownID(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("test")

	err := build.AddPart(snap, "part-nope", [3]int{})
	var unknownErr *engine.UnknownPartError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "part-nope", unknownErr.PartID)
	assert.Empty(t, build.Parts)
}

// TestAddPart_MechanicPartRejected verifies mechanic-only parts cannot be
// hand-picked.
func TestAddPart_MechanicPartRejected(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("test")

	err := build.AddPart(snap, "mech-reaction", [3]int{})
	var mechErr *engine.MechanicPartError
	require.ErrorAs(t, err, &mechErr)
}

// TestAddPart_InvalidLevels verifies negative levels and levels on absent
// slots are rejected before reaching the aggregator.
func TestAddPart_InvalidLevels(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("test")

	assert.Error(t, build.AddPart(snap, "part-warding", [3]int{-1, 0, 0}),
		"negative level must be rejected")
	assert.Error(t, build.AddPart(snap, "part-warding", [3]int{0, 0, 2}),
		"level on a slot without content must be rejected")
	assert.Empty(t, build.Parts)
}

// TestSetApplyDuration verifies only duration-scalable parts accept the flag.
func TestSetApplyDuration(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("test")
	require.NoError(t, build.AddPart(snap, "part-warding", [3]int{}))
	require.NoError(t, build.AddPart(snap, "part-additional-damage", [3]int{}))

	assert.NoError(t, build.Parts[0].SetApplyDuration(snap.Part("part-warding"), true))
	assert.Error(t, build.Parts[1].SetApplyDuration(snap.Part("part-additional-damage"), true))
}

// TestRemovePart verifies removal preserves order and rejects bad indexes.
func TestRemovePart(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("test")
	require.NoError(t, build.AddPart(snap, "part-warding", [3]int{}))
	require.NoError(t, build.AddPart(snap, "part-additional-damage", [3]int{}))
	require.NoError(t, build.AddPart(snap, "part-empower", [3]int{}))

	assert.False(t, build.RemovePart(3))
	assert.True(t, build.RemovePart(1))
	require.Len(t, build.Parts, 2)
	assert.Equal(t, "part-warding", build.Parts[0].PartID)
	assert.Equal(t, "part-empower", build.Parts[1].PartID)
}

// TestRecordRehydrate_RoundTrip verifies serialize/rehydrate returns an
// equivalent configuration against the same snapshot.
func TestRecordRehydrate_RoundTrip(t *testing.T) {
	snap := testSnapshot(t)
	build := engine.NewBuildConfig("storm shell")
	build.Description = "A crackling barrier."
	require.NoError(t, build.AddPart(snap, "part-warding", [3]int{2, 0, 0}))
	build.Properties = []engine.PropertyInstance{{PropertyID: "prop-keen", Level: 1}}
	build.Mechanics.RangeSteps = 2
	build.Mechanics.Duration = engine.DurationSpec{Type: catalog.DurationRound, Value: 2, SustainAP: 1}
	build.Damage = engine.DamageSpec{Amount: 2, DieSize: 6, Type: "fire"}

	restored, warnings := engine.Rehydrate(build.Record(), snap)
	require.Empty(t, warnings)
	assert.Equal(t, build.ID, restored.ID)
	assert.Equal(t, build.Name, restored.Name)
	assert.Equal(t, build.Description, restored.Description)
	assert.Equal(t, build.Parts, restored.Parts)
	assert.Equal(t, build.Properties, restored.Properties)
	assert.Equal(t, build.Mechanics, restored.Mechanics)
	assert.Equal(t, build.Damage, restored.Damage)

	before := engine.ComputeCosts(build, snap)
	after := engine.ComputeCosts(restored, snap)
	assert.Equal(t, before.TotalEnergy, after.TotalEnergy,
		"rehydration must not change the computed cost")
}

// TestRehydrate_DropsVanishedReferences verifies stale part and property ids
// are dropped with warnings, never fatal.
func TestRehydrate_DropsVanishedReferences(t *testing.T) {
	snap := testSnapshot(t)
	rec := engine.BuildRecord{
		ID:   "5524d67a-3a3f-46a6-b832-91b2c2b81d5f",
		Name: "old build",
		Parts: []engine.PartInstance{
			{PartID: "part-warding", Origin: engine.OriginExplicit},
			{PartID: "part-removed-in-v2", Origin: engine.OriginExplicit},
		},
		Properties: []engine.PropertyInstance{{PropertyID: "prop-gone"}},
		Mechanics:  engine.DefaultSelections(),
		Damage:     engine.DamageSpec{Type: engine.DamageTypeNone},
	}

	build, warnings := engine.Rehydrate(rec, snap)
	require.Len(t, build.Parts, 1)
	assert.Equal(t, "part-warding", build.Parts[0].PartID)
	assert.Empty(t, build.Properties)
	require.Len(t, warnings, 2)
}

// TestRehydrate_RepairsMalformedFields verifies field-level defaults for
// malformed stored records.
func TestRehydrate_RepairsMalformedFields(t *testing.T) {
	snap := testSnapshot(t)
	rec := engine.BuildRecord{
		ID:   "not-a-uuid",
		Name: "mangled",
		Parts: []engine.PartInstance{
			{PartID: "part-warding", Levels: [3]int{-2, 0, 0}, Origin: engine.OriginExplicit},
		},
		Mechanics: engine.MechanicSelections{RangeSteps: -4},
		Damage:    engine.DamageSpec{Amount: -1},
	}

	build, warnings := engine.Rehydrate(rec, snap)
	assert.NotEqual(t, "not-a-uuid", build.ID.String(), "a fresh id replaces an unparsable one")
	assert.Equal(t, [3]int{0, 0, 0}, build.Parts[0].Levels)
	assert.Equal(t, catalog.ActionBasic, build.Mechanics.Action)
	assert.Equal(t, catalog.AreaNone, build.Mechanics.Area.Type)
	assert.Equal(t, catalog.DurationInstant, build.Mechanics.Duration.Type)
	assert.Equal(t, 0, build.Mechanics.RangeSteps)
	assert.Equal(t, engine.DamageTypeNone, build.Damage.Type)
	assert.Equal(t, 0, build.Damage.Amount)
	assert.NotEmpty(t, warnings)

	costs := engine.ComputeCosts(build, snap)
	assert.InDelta(t, 2.0, costs.TotalEnergy, 1e-9, "repaired build still prices")
}

// TestRehydrate_MissingOriginDefaultsToExplicit verifies pre-tagging records
// load as explicit instances.
func TestRehydrate_MissingOriginDefaultsToExplicit(t *testing.T) {
	snap := testSnapshot(t)
	rec := engine.BuildRecord{
		ID:        "5524d67a-3a3f-46a6-b832-91b2c2b81d5f",
		Name:      "legacy",
		Parts:     []engine.PartInstance{{PartID: "part-warding"}},
		Mechanics: engine.DefaultSelections(),
		Damage:    engine.DamageSpec{Type: engine.DamageTypeNone},
	}

	build, _ := engine.Rehydrate(rec, snap)
	require.Len(t, build.Parts, 1)
	assert.Equal(t, engine.OriginExplicit, build.Parts[0].Origin)
}
