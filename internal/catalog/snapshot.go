package catalog

import "fmt"

// Snapshot is one immutable view of catalog state, indexed by id. Every
// engine computation runs against exactly one Snapshot; refreshing content
// means building a new Snapshot, never mutating an existing one.
type Snapshot struct {
	parts       map[string]*Part
	properties  map[string]*Property
	progression map[Archetype]map[int]*ProgressionRow
	mechanics   *MechanicMap
}

// NewSnapshot indexes the given content by id and returns the snapshot.
//
// Precondition: part and property ids must be unique; mechanics may be nil
// when no mechanic synthesis is needed.
// Postcondition: Returns an indexed Snapshot or an error naming the first
// duplicate id.
func NewSnapshot(parts []*Part, properties []*Property, progression map[Archetype][]*ProgressionRow, mechanics *MechanicMap) (*Snapshot, error) {
	s := &Snapshot{
		parts:       make(map[string]*Part, len(parts)),
		properties:  make(map[string]*Property, len(properties)),
		progression: make(map[Archetype]map[int]*ProgressionRow, len(progression)),
		mechanics:   mechanics,
	}
	for _, p := range parts {
		if _, exists := s.parts[p.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate part id %q", p.ID)
		}
		s.parts[p.ID] = p
	}
	for _, p := range properties {
		if _, exists := s.properties[p.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate property id %q", p.ID)
		}
		s.properties[p.ID] = p
	}
	for arch, rows := range progression {
		byLevel := make(map[int]*ProgressionRow, len(rows))
		for _, row := range rows {
			if _, exists := byLevel[row.Level]; exists {
				return nil, fmt.Errorf("catalog: duplicate progression level %d for archetype %q", row.Level, arch)
			}
			byLevel[row.Level] = row
		}
		s.progression[arch] = byLevel
	}
	return s, nil
}

// Part returns the Part for the given id, or nil if not found. Absent parts
// are an expected condition: saved builds may reference content that has
// since been removed.
func (s *Snapshot) Part(id string) *Part {
	return s.parts[id]
}

// Property returns the Property for the given id, or nil if not found.
func (s *Snapshot) Property(id string) *Property {
	return s.properties[id]
}

// ProgressionRow returns the row for the given archetype and exact level and
// whether it was found.
func (s *Snapshot) ProgressionRow(arch Archetype, level int) (*ProgressionRow, bool) {
	row, ok := s.progression[arch][level]
	return row, ok
}

// Mechanics returns the mechanic-id mapping, or nil when none was loaded.
func (s *Snapshot) Mechanics() *MechanicMap {
	return s.mechanics
}

// PartCount returns the number of indexed parts.
func (s *Snapshot) PartCount() int {
	return len(s.parts)
}

// AllParts returns all indexed parts in unspecified order.
//
// Postcondition: len(result) == PartCount().
func (s *Snapshot) AllParts() []*Part {
	out := make([]*Part, 0, len(s.parts))
	for _, p := range s.parts {
		out = append(out, p)
	}
	return out
}

// AllProperties returns all indexed properties in unspecified order.
func (s *Snapshot) AllProperties() []*Property {
	out := make([]*Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	return out
}
