package engine

import "fmt"

// UnknownPartError is returned at the mutation boundary when a part id does
// not resolve against the snapshot. Stale ids inside already-stored builds
// are handled as warnings, not errors.
type UnknownPartError struct {
	PartID string
}

func (e *UnknownPartError) Error() string {
	return fmt.Sprintf("engine: unknown part id %q", e.PartID)
}

// MechanicPartError is returned when a caller tries to hand-pick a part that
// exists only for mechanic synthesis.
type MechanicPartError struct {
	PartID string
}

func (e *MechanicPartError) Error() string {
	return fmt.Sprintf("engine: part %q is a mechanic part and cannot be added directly", e.PartID)
}
