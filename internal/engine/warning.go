package engine

import "fmt"

// WarningKind classifies a recoverable problem found while computing against
// a catalog snapshot. Warnings ride on results; the costing path never
// returns an error during normal editing.
type WarningKind string

const (
	// WarnUnresolvedPart marks a stored part id absent from the snapshot.
	WarnUnresolvedPart WarningKind = "unresolved_part"
	// WarnUnresolvedProperty marks a stored property id absent from the snapshot.
	WarnUnresolvedProperty WarningKind = "unresolved_property"
	// WarnUnboundMechanic marks a mechanic kind with no id binding or whose
	// bound part is absent; that one mechanic synthesizes nothing.
	WarnUnboundMechanic WarningKind = "unbound_mechanic"
	// WarnMalformedField marks a stored field repaired with its default.
	WarnMalformedField WarningKind = "malformed_field"
)

// Warning is one recoverable degradation, attributable to a reference id or
// field name.
type Warning struct {
	Kind WarningKind
	Ref  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Ref)
}
