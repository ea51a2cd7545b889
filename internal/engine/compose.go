package engine

import "github.com/jtholloran/runeforge/internal/catalog"

// TPSource attributes training-point cost to the kind of line item that
// charged it, so totals stay explainable.
type TPSource string

const (
	TPSourceParts      TPSource = "parts"
	TPSourceMechanics  TPSource = "mechanics"
	TPSourceProperties TPSource = "properties"
)

// LineItem is one priced occurrence of a catalog part. For additive parts
// Energy and TrainingPoints carry the contribution directly; for percentage
// parts Factor carries the energy multiplier instead and Energy is zero.
type LineItem struct {
	PartID         string
	Name           string
	Origin         Origin
	Trigger        TriggerKind
	Energy         float64
	TrainingPoints float64
	Percentage     bool
	Factor         float64
	ApplyDuration  bool
}

// ComposeLine prices one part instance: base plus option delta times level
// for each slot, for energy and training points alike. Percentage parts
// compose in factor space, so the "sum" becomes the line's Factor.
//
// Precondition: part must be the resolved catalog part for inst.PartID, and
// inst must have passed the mutation-boundary validation.
// Postcondition: Pure; the returned line carries the instance's origin tags.
func ComposeLine(inst PartInstance, part *catalog.Part) LineItem {
	line := LineItem{
		PartID:        part.ID,
		Name:          part.Name,
		Origin:        inst.Origin,
		Trigger:       inst.Trigger,
		Percentage:    part.Percentage,
		ApplyDuration: inst.ApplyDuration,
	}

	energy := part.Energy
	tp := part.TrainingPoints
	for slot, level := range inst.Levels {
		if level <= 0 || !part.Options[slot].HasContent() {
			continue
		}
		energy += part.Options[slot].Energy * float64(level)
		tp += part.Options[slot].TrainingPoints * float64(level)
	}

	if part.Percentage {
		line.Factor = energy
	} else {
		line.Energy = energy
	}
	line.TrainingPoints = tp
	return line
}

// PropertyLine is one priced armament property. CurrencyFactor composes
// multiplicatively across all applied properties.
type PropertyLine struct {
	PropertyID     string
	Name           string
	ItemPoints     float64
	TrainingPoints float64
	CurrencyFactor float64
}

// ComposeProperty prices one property instance: base deltas plus the option
// tier deltas times level, with the option currency factor compounding per
// level.
//
// Precondition: prop must be the resolved catalog property for
// inst.PropertyID; inst.Level must be >= 0.
func ComposeProperty(inst PropertyInstance, prop *catalog.Property) PropertyLine {
	line := PropertyLine{
		PropertyID:     prop.ID,
		Name:           prop.Name,
		ItemPoints:     prop.ItemPoints,
		TrainingPoints: prop.TrainingPoints,
		CurrencyFactor: prop.CurrencyFactor,
	}
	if inst.Level > 0 && prop.Option.HasContent() {
		line.ItemPoints += prop.Option.ItemPoints * float64(inst.Level)
		line.TrainingPoints += prop.Option.TrainingPoints * float64(inst.Level)
		if prop.Option.CurrencyFactor > 0 {
			for i := 0; i < inst.Level; i++ {
				line.CurrencyFactor *= prop.Option.CurrencyFactor
			}
		}
	}
	return line
}
