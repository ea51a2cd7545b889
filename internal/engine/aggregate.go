package engine

import "github.com/jtholloran/runeforge/internal/catalog"

// CostBreakdown is the aggregated price of one build configuration against
// one catalog snapshot.
type CostBreakdown struct {
	TotalEnergy         float64
	TotalTrainingPoints float64
	TotalItemPoints     float64
	// CurrencyFactor is the multiplicative composition of all property
	// currency factors; 1.0 means no price change.
	CurrencyFactor float64
	// TPBySource attributes training points per line-item kind.
	TPBySource map[TPSource]float64
	// Lines carries the priced line items in composition order, synthesized
	// instances included, for display layers that need per-line detail.
	Lines []LineItem
	// PropertyLines carries the priced armament properties.
	PropertyLines []PropertyLine
	Warnings      []Warning
}

// ComputeCosts prices the whole build: explicit parts, synthesized mechanic
// parts, and armament properties. Additive energy sums first; percentage
// factors then multiply the subtotal, so insertion order never changes the
// result. When the build's duration is non-instant with tier T, additive
// lines flagged ApplyDuration contribute energy times T.
//
// Precondition: cfg's stored instances passed mutation-boundary validation;
// snap must be non-nil with a mechanic map.
// Postcondition: Pure and deterministic: identical (cfg, snap) inputs yield
// identical breakdowns. Unresolvable references degrade to warnings.
func ComputeCosts(cfg *BuildConfig, snap *catalog.Snapshot) CostBreakdown {
	out := CostBreakdown{
		CurrencyFactor: 1,
		TPBySource:     make(map[TPSource]float64),
	}

	synthesized, warnings := SynthesizeMechanicParts(cfg.Mechanics, cfg.Damage, snap)
	out.Warnings = warnings

	durationTier := durationScale(cfg.Mechanics.Duration, snap)

	var factors []float64
	price := func(inst PartInstance, source TPSource) {
		part := snap.Part(inst.PartID)
		if part == nil {
			out.Warnings = append(out.Warnings, Warning{Kind: WarnUnresolvedPart, Ref: inst.PartID})
			return
		}
		line := ComposeLine(inst, part)
		if line.Percentage {
			factors = append(factors, line.Factor)
		} else {
			energy := line.Energy
			if line.ApplyDuration && durationTier > 1 {
				energy *= float64(durationTier)
			}
			out.TotalEnergy += energy
		}
		out.TotalTrainingPoints += line.TrainingPoints
		out.TPBySource[source] += line.TrainingPoints
		out.Lines = append(out.Lines, line)
	}

	for _, inst := range cfg.Parts {
		price(inst, TPSourceParts)
	}
	for _, inst := range synthesized {
		price(inst, TPSourceMechanics)
	}

	// Multiplicative pass after all additive contributions. Factors commute,
	// so the order they were added in cannot matter.
	for _, f := range factors {
		out.TotalEnergy *= f
	}

	for _, instProp := range cfg.Properties {
		prop := snap.Property(instProp.PropertyID)
		if prop == nil {
			out.Warnings = append(out.Warnings, Warning{Kind: WarnUnresolvedProperty, Ref: instProp.PropertyID})
			continue
		}
		line := ComposeProperty(instProp, prop)
		out.TotalItemPoints += line.ItemPoints
		out.TotalTrainingPoints += line.TrainingPoints
		out.TPBySource[TPSourceProperties] += line.TrainingPoints
		out.CurrencyFactor *= line.CurrencyFactor
		out.PropertyLines = append(out.PropertyLines, line)
	}

	return out
}

// durationScale returns the duration tier applied to ApplyDuration lines, or
// 0 when the duration is instant or unresolvable.
func durationScale(dur DurationSpec, snap *catalog.Snapshot) int {
	if dur.Type == catalog.DurationInstant || dur.Type == "" {
		return 0
	}
	m := snap.Mechanics()
	if m == nil || len(m.DurationTiers[dur.Type]) == 0 {
		return 0
	}
	tier, _ := m.DurationTierFor(dur.Type, dur.Value)
	return tier
}
