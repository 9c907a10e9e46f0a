// Package tiles holds the per-identifier tile metadata table.
package tiles

// UnknownType is the type assigned to identifiers missing from a table
const UnknownType = "unknown"

// Metadata describes one tile identifier.
// Animated and Frames are optional and only emitted when set.
type Metadata struct {
	Passable bool   `json:"passable" yaml:"passable"`
	Type     string `json:"type" yaml:"type"`
	Animated *bool  `json:"animated,omitempty" yaml:"animated,omitempty"`
	Frames   *int   `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// Default returns the record used for identifiers a table does not cover
func Default() Metadata {
	return Metadata{Passable: true, Type: UnknownType}
}

// Clone returns a deep copy; optional fields get fresh allocations
func (m Metadata) Clone() Metadata {
	out := m
	if m.Animated != nil {
		animated := *m.Animated
		out.Animated = &animated
	}
	if m.Frames != nil {
		frames := *m.Frames
		out.Frames = &frames
	}
	return out
}

// IsAnimated reports the metadata's own animated flag
func (m Metadata) IsAnimated() bool {
	return m.Animated != nil && *m.Animated
}

// Table maps tile identifiers to their metadata
type Table map[int]Metadata

// Lookup returns a private copy of the metadata for id and whether the table
// held an entry. Missing identifiers resolve to Default.
func (t Table) Lookup(id int) (Metadata, bool) {
	m, ok := t[id]
	if !ok {
		return Default(), false
	}
	return m.Clone(), true
}

// Bool returns a pointer to v, for building optional fields
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for building optional fields
func Int(v int) *int { return &v }
