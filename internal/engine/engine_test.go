package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jtholloran/runeforge/internal/catalog"
)

// testMechanicMap returns the mechanic-id mapping used by the engine tests,
// matching the shape of data/mechanics.yaml.
func testMechanicMap() *catalog.MechanicMap {
	return &catalog.MechanicMap{
		ActionIDs: map[catalog.ActionType]string{
			catalog.ActionBasic: "mech-action-basic",
			catalog.ActionQuick: "mech-action-quick",
			catalog.ActionFree:  "mech-action-free",
			catalog.ActionLong:  "mech-action-long",
		},
		ReactionID:      "mech-reaction",
		RangeID:         "mech-range",
		RangeStepSpaces: 5,
		AreaIDs: map[catalog.AreaType]string{
			catalog.AreaCone:   "mech-area-cone",
			catalog.AreaSphere: "mech-area-sphere",
			catalog.AreaLine:   "mech-area-line",
		},
		DurationIDs: map[catalog.DurationType]string{
			catalog.DurationRound:  "mech-duration-round",
			catalog.DurationMinute: "mech-duration-minute",
			catalog.DurationHour:   "mech-duration-hour",
		},
		DurationTiers: map[catalog.DurationType][]catalog.DurationTier{
			catalog.DurationRound: {
				{Value: 1, Label: "1 round"},
				{Value: 2, Label: "2 rounds"},
				{Value: 3, Label: "3 rounds"},
			},
			catalog.DurationMinute: {
				{Value: 1, Label: "1 minute"},
				{Value: 10, Label: "10 minutes"},
				{Value: 30, Label: "30 minutes"},
			},
			catalog.DurationHour: {
				{Value: 1, Label: "1 hour"},
				{Value: 4, Label: "4 hours"},
				{Value: 12, Label: "12 hours"},
			},
		},
		FocusID:            "mech-duration-focus",
		NoHarmID:           "mech-duration-no-harm",
		EndsOnActivationID: "mech-duration-ends-on-activation",
		SustainID:          "mech-duration-sustain",
		DamageTypeIDs: map[string]string{
			"fire":  "mech-damage-fire",
			"frost": "mech-damage-frost",
		},
	}
}

func mechPart(id, name string, energy float64) *catalog.Part {
	return &catalog.Part{ID: id, Name: name, Category: "Mechanic", Kind: catalog.PartKindPower, Energy: energy, Mechanic: true}
}

func leveledMechPart(id, name string, base, perLevel float64) *catalog.Part {
	p := mechPart(id, name, base)
	p.Options[0] = catalog.Option{Description: "Per level", Energy: perLevel}
	return p
}

// testParts returns the catalog parts the engine tests price against.
func testParts() []*catalog.Part {
	rangePart := leveledMechPart("mech-range", "Range", 0, 0.5)
	rangePart.DurationScaled = true

	quick := mechPart("mech-action-quick", "Quick Action", 1)
	quick.TrainingPoints = 1
	free := mechPart("mech-action-free", "Free Action", 2)
	free.TrainingPoints = 2
	reaction := mechPart("mech-reaction", "Reaction", 1)
	reaction.TrainingPoints = 1

	return []*catalog.Part{
		mechPart("mech-action-basic", "Basic Action", 0),
		quick,
		free,
		mechPart("mech-action-long", "Power Long Action", -0.5),
		reaction,
		rangePart,
		leveledMechPart("mech-area-cone", "Area (Cone)", 0.5, 0.5),
		leveledMechPart("mech-area-sphere", "Area (Sphere)", 0.5, 0.75),
		leveledMechPart("mech-area-line", "Area (Line)", 0.25, 0.5),
		leveledMechPart("mech-duration-round", "Duration (Round)", 0, 0.5),
		leveledMechPart("mech-duration-minute", "Duration (Minute)", 0, 1),
		leveledMechPart("mech-duration-hour", "Duration (Hour)", 0, 1.5),
		mechPart("mech-duration-focus", "Focus", -0.5),
		mechPart("mech-duration-no-harm", "No Harm or Adaptation", -0.25),
		mechPart("mech-duration-ends-on-activation", "Ends on Activation", 0.25),
		leveledMechPart("mech-duration-sustain", "Sustain", 0, -0.25),
		mechPart("mech-damage-fire", "Fire Damage", 0.25),
		mechPart("mech-damage-frost", "Frost Damage", 0.25),
		{
			ID: "part-additional-damage", Name: "Additional Damage", Category: "Damage",
			Kind: catalog.PartKindPower, Energy: 1.5, TrainingPoints: 1,
			Options: [3]catalog.Option{
				{Description: "Per additional damage die", Energy: 1.5, TrainingPoints: 1},
			},
		},
		{
			ID: "part-warding", Name: "Warding", Category: "Defense",
			Kind: catalog.PartKindPower, Energy: 2, TrainingPoints: 1, DurationScaled: true,
			Options: [3]catalog.Option{
				{Description: "Per warding level", Energy: 1, TrainingPoints: 1},
				{Description: "Extend to adjacent ally", Energy: 0.5},
			},
		},
		{
			ID: "part-empower", Name: "Empower", Category: "Modifier",
			Kind: catalog.PartKindPower, Energy: 1.25, TrainingPoints: 2, Percentage: true,
			Options: [3]catalog.Option{
				{Description: "Per empower step", Energy: 0.25, TrainingPoints: 1},
			},
		},
		{
			ID: "part-attunement", Name: "Attunement", Category: "Modifier",
			Kind: catalog.PartKindPower, Energy: 0.9, TrainingPoints: 1, Percentage: true,
		},
	}
}

func testProperties() []*catalog.Property {
	return []*catalog.Property{
		{
			ID: "prop-keen", Name: "Keen", Kind: catalog.PropertyKindWeapon,
			ItemPoints: 2, TrainingPoints: 1, CurrencyFactor: 1.5,
			Option: catalog.PropertyOption{
				Description: "Per keen tier", ItemPoints: 1, TrainingPoints: 1, CurrencyFactor: 1.25,
			},
		},
		{
			ID: "prop-balanced", Name: "Balanced", Kind: catalog.PropertyKindWeapon,
			ItemPoints: 1, CurrencyFactor: 1.2,
			Option: catalog.PropertyOption{CurrencyFactor: 1},
		},
	}
}

// testSnapshot builds the snapshot every engine test computes against.
func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot(testParts(), testProperties(), nil, testMechanicMap())
	require.NoError(t, err)
	return snap
}
