package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtholloran/runeforge/internal/catalog"
)

func TestNewSnapshot_IndexesByID(t *testing.T) {
	parts := []*catalog.Part{
		{ID: "part-a", Name: "A", Kind: catalog.PartKindPower},
		{ID: "part-b", Name: "B", Kind: catalog.PartKindTechnique},
	}
	properties := []*catalog.Property{
		{ID: "prop-a", Name: "A", Kind: catalog.PropertyKindWeapon, CurrencyFactor: 1},
	}
	progression := map[catalog.Archetype][]*catalog.ProgressionRow{
		catalog.ArchetypePower: {
			{Level: 1, ProficiencyPoints: 2},
			{Level: 2, ProficiencyPoints: 3},
		},
	}

	snap, err := catalog.NewSnapshot(parts, properties, progression, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.PartCount())
	assert.Same(t, parts[1], snap.Part("part-b"))
	assert.Nil(t, snap.Part("part-missing"), "absent parts resolve to nil, not an error")
	assert.Same(t, properties[0], snap.Property("prop-a"))
	assert.Nil(t, snap.Property("prop-missing"))
	assert.Nil(t, snap.Mechanics())

	row, ok := snap.ProgressionRow(catalog.ArchetypePower, 2)
	require.True(t, ok)
	assert.Equal(t, 3, row.ProficiencyPoints)
	_, ok = snap.ProgressionRow(catalog.ArchetypePower, 3)
	assert.False(t, ok)
	_, ok = snap.ProgressionRow(catalog.ArchetypeMartial, 1)
	assert.False(t, ok)

	assert.Len(t, snap.AllParts(), 2)
	assert.Len(t, snap.AllProperties(), 1)
}

func TestNewSnapshot_RejectsDuplicatePartID(t *testing.T) {
	parts := []*catalog.Part{
		{ID: "part-a", Name: "A", Kind: catalog.PartKindPower},
		{ID: "part-a", Name: "A again", Kind: catalog.PartKindPower},
	}
	_, err := catalog.NewSnapshot(parts, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate part id "part-a"`)
}

func TestNewSnapshot_RejectsDuplicatePropertyID(t *testing.T) {
	properties := []*catalog.Property{
		{ID: "prop-a", Name: "A", Kind: catalog.PropertyKindWeapon, CurrencyFactor: 1},
		{ID: "prop-a", Name: "A again", Kind: catalog.PropertyKindArmor, CurrencyFactor: 1},
	}
	_, err := catalog.NewSnapshot(nil, properties, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate property id "prop-a"`)
}

func TestNewSnapshot_RejectsDuplicateProgressionLevel(t *testing.T) {
	progression := map[catalog.Archetype][]*catalog.ProgressionRow{
		catalog.ArchetypeMartial: {
			{Level: 1},
			{Level: 1},
		},
	}
	_, err := catalog.NewSnapshot(nil, nil, progression, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate progression level 1")
}
