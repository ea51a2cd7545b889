package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtholloran/runeforge/internal/catalog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadParts_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "powers.yaml"), `
parts:
  - id: part-additional-damage
    name: "Additional Damage"
    category: Damage
    kind: power
    energy: 1.5
    training_points: 1
    options:
      - description: "Per additional damage die"
        energy: 1.5
        training_points: 1
  - id: part-empower
    name: "Empower"
    kind: power
    percentage: true
    energy: 1.25
`)
	parts, err := catalog.LoadParts(dir)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	p := parts[0]
	assert.Equal(t, "part-additional-damage", p.ID)
	assert.Equal(t, "Additional Damage", p.Name)
	assert.Equal(t, catalog.PartKindPower, p.Kind)
	assert.Equal(t, 1.5, p.Energy)
	assert.True(t, p.Options[0].HasContent())
	assert.Equal(t, 1.5, p.Options[0].Energy)
	assert.False(t, p.Options[1].HasContent())
	assert.Equal(t, 1, p.OptionCount())

	assert.True(t, parts[1].Percentage)
}

func TestLoadParts_RejectsMissingID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
parts:
  - name: "Nameless"
    kind: power
`)
	_, err := catalog.LoadParts(dir)
	assert.Error(t, err)
}

func TestLoadParts_RejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
parts:
  - id: part-x
    name: "X"
    kind: ritual
`)
	_, err := catalog.LoadParts(dir)
	assert.Error(t, err)
}

func TestLoadProperties_DefaultsCurrencyFactor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "props.yaml"), `
properties:
  - id: prop-keen
    name: "Keen"
    kind: weapon
    item_points: 2
    option:
      description: "Per keen tier"
      item_points: 1
`)
	properties, err := catalog.LoadProperties(dir)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, 1.0, properties[0].CurrencyFactor, "unset currency factor defaults to neutral")
	assert.Equal(t, 1.0, properties[0].Option.CurrencyFactor)
}

func TestLoadProgression_SortsByLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progression.yaml")
	writeFile(t, path, `
tables:
  power:
    - { level: 2, proficiency_points: 3 }
    - { level: 1, proficiency_points: 2, feat_points: 1 }
`)
	tables, err := catalog.LoadProgression(path)
	require.NoError(t, err)
	rows := tables[catalog.ArchetypePower]
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Level)
	assert.Equal(t, 2, rows[1].Level)
}

func TestLoadProgression_RejectsUnknownArchetype(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progression.yaml")
	writeFile(t, path, `
tables:
  trickster:
    - { level: 1 }
`)
	_, err := catalog.LoadProgression(path)
	assert.Error(t, err)
}

func TestLoadSnapshot_FromRepoData(t *testing.T) {
	snap, err := catalog.LoadSnapshot(
		"../../data/parts", "../../data/properties",
		"../../data/progression.yaml", "../../data/mechanics.yaml",
	)
	require.NoError(t, err)
	assert.Greater(t, snap.PartCount(), 20)
	require.NotNil(t, snap.Mechanics())
	assert.NotNil(t, snap.Part(snap.Mechanics().ReactionID),
		"every shipped mechanic binding must resolve against the shipped parts")
	row, ok := snap.ProgressionRow(catalog.ArchetypePower, 1)
	require.True(t, ok)
	assert.Equal(t, 2, row.ProficiencyPoints)
}
