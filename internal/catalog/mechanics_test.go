package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtholloran/runeforge/internal/catalog"
)

func validMechanicMap() *catalog.MechanicMap {
	return &catalog.MechanicMap{
		ActionIDs:       map[catalog.ActionType]string{catalog.ActionBasic: "mech-action-basic"},
		ReactionID:      "mech-reaction",
		RangeID:         "mech-range",
		RangeStepSpaces: 5,
		AreaIDs:         map[catalog.AreaType]string{catalog.AreaSphere: "mech-area-sphere"},
		DurationIDs:     map[catalog.DurationType]string{catalog.DurationRound: "mech-duration-round"},
		DurationTiers: map[catalog.DurationType][]catalog.DurationTier{
			catalog.DurationRound: {
				{Value: 1, Label: "1 round"},
				{Value: 2, Label: "2 rounds"},
				{Value: 3, Label: "3 rounds"},
			},
		},
	}
}

func TestMechanicMap_Validate(t *testing.T) {
	require.NoError(t, validMechanicMap().Validate())
}

func TestMechanicMap_ValidateCollectsAllViolations(t *testing.T) {
	m := validMechanicMap()
	m.ActionIDs[catalog.ActionQuick] = ""
	m.AreaIDs[catalog.AreaNone] = "mech-area-nothing"
	m.DurationIDs[catalog.DurationMinute] = "mech-duration-minute"
	m.RangeStepSpaces = 0

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actions.quick")
	assert.Contains(t, err.Error(), "'none'")
	assert.Contains(t, err.Error(), "durations.minute has no tier table")
	assert.Contains(t, err.Error(), "range_step_spaces")
}

func TestMechanicMap_ValidateRejectsNonIncreasingTiers(t *testing.T) {
	m := validMechanicMap()
	m.DurationTiers[catalog.DurationRound] = []catalog.DurationTier{
		{Value: 1, Label: "1 round"},
		{Value: 1, Label: "also 1 round"},
	}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly increase")
}

func TestDurationTierFor(t *testing.T) {
	m := validMechanicMap()

	cases := []struct {
		value int
		tier  int
		label string
	}{
		{1, 1, "1 round"},
		{2, 2, "2 rounds"},
		{3, 3, "3 rounds"},
		// Values between tiers snap up to the next tier.
		{0, 1, "1 round"},
		// Values past the top tier clamp to it.
		{50, 3, "3 rounds"},
	}
	for _, c := range cases {
		idx, tier := m.DurationTierFor(catalog.DurationRound, c.value)
		assert.Equal(t, c.tier, idx, "value %d", c.value)
		assert.Equal(t, c.label, tier.Label, "value %d", c.value)
	}
}

func TestTierByIndex(t *testing.T) {
	m := validMechanicMap()

	tier, ok := m.TierByIndex(catalog.DurationRound, 2)
	require.True(t, ok)
	assert.Equal(t, "2 rounds", tier.Label)

	_, ok = m.TierByIndex(catalog.DurationRound, 0)
	assert.False(t, ok)
	_, ok = m.TierByIndex(catalog.DurationRound, 4)
	assert.False(t, ok)
	_, ok = m.TierByIndex(catalog.DurationMinute, 1)
	assert.False(t, ok)
}

func TestLoadMechanicMap_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mechanics.yaml")
	writeFile(t, path, `
actions:
  basic: ""
range_step_spaces: 5
`)
	_, err := catalog.LoadMechanicMap(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actions.basic")
}

func TestLoadMechanicMap_ShippedFile(t *testing.T) {
	m, err := catalog.LoadMechanicMap("../../data/mechanics.yaml")
	require.NoError(t, err)
	assert.Equal(t, 5, m.RangeStepSpaces)
	assert.Len(t, m.ActionIDs, 4)
	assert.Len(t, m.DurationIDs, 5)
	for dur := range m.DurationIDs {
		assert.NotEmpty(t, m.DurationTiers[dur], "duration %s", dur)
	}
}
