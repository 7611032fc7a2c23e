package models

import (
	"github.com/tiendc/go-deepcopy"
)

// RosterRow is one student's cells keyed by column label.
type RosterRow map[string]Value

// Get returns the value stored under label, or Empty.
func (r RosterRow) Get(label string) Value {
	if r == nil {
		return Empty()
	}
	return r[label]
}

// Clone returns a copy of the row.
func (r RosterRow) Clone() RosterRow {
	out := make(RosterRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Roster is the ordered list of student rows.
type Roster []RosterRow

// Clone returns a deep copy of the roster.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	var out Roster
	if err := deepcopy.Copy(&out, &r); err != nil {
		out = make(Roster, len(r))
		for i, row := range r {
			out[i] = row.Clone()
		}
	}
	return out
}
