package models

import (
	"github.com/tiendc/go-deepcopy"
)

// GroupType classifies a column group.
type GroupType string

const (
	// GroupInfo holds fixed student information (names, ids).
	GroupInfo GroupType = "info"
	// GroupPeriod holds the columns of one grading period.
	GroupPeriod GroupType = "period"
	// GroupColumns is a plain run of columns.
	GroupColumns GroupType = "columns"
)

// ParseGroupType returns the group type named by s, or GroupColumns
// when s is not a known type.
func ParseGroupType(s string) (GroupType, bool) {
	switch GroupType(s) {
	case GroupInfo, GroupPeriod, GroupColumns:
		return GroupType(s), true
	}
	return GroupColumns, false
}

// Column is a single gradebook column.
type Column struct {
	// ID is the positional column address (A, B, ..., AA).
	ID string `json:"id"`
	// Label is the display name and the roster row key.
	Label string `json:"label" validate:"required"`
	// Date is an optional free-form date ("" when absent).
	Date string `json:"date,omitempty"`
	// Points is the maximum score (nil when absent).
	Points *int `json:"points,omitempty"`
	// IsEditable marks columns whose values are entered by hand.
	IsEditable bool `json:"isEditable"`
	// IsNew marks columns added in the current editing session.
	IsNew bool `json:"-"`
	// Formula is the bracket-notation formula ("" when absent).
	Formula string `json:"formula,omitempty"`
}

// IsComputed reports whether the column value is derived from its formula.
func (c Column) IsComputed() bool {
	return c.Formula != "" && !c.IsEditable
}

// ColumnGroup is a contiguous run of columns.
type ColumnGroup struct {
	// ID is the address range "first:last".
	ID string `json:"id"`
	// Label is the group display name.
	Label string `json:"label"`
	// Color is a display hint, kept verbatim.
	Color string `json:"color,omitempty"`
	// Type is the group classification.
	Type GroupType `json:"type" validate:"oneof=info period columns"`
	// Columns are the group's columns in worksheet order.
	Columns []Column `json:"columns" validate:"min=1,dive"`
}

// Section is the positional classification of a group.
type Section string

const (
	SectionLeft   Section = "left"
	SectionCenter Section = "center"
	SectionRight  Section = "right"
)

// Schema is the ordered list of column groups.
type Schema []ColumnGroup

// Columns returns every column in worksheet order.
func (s Schema) Columns() []Column {
	var cols []Column
	for _, g := range s {
		cols = append(cols, g.Columns...)
	}
	return cols
}

// ColumnByLabel finds a column by its label.
func (s Schema) ColumnByLabel(label string) (Column, bool) {
	for _, g := range s {
		for _, c := range g.Columns {
			if c.Label == label {
				return c, true
			}
		}
	}
	return Column{}, false
}

// ColumnByID finds a column by its address.
func (s Schema) ColumnByID(id string) (Column, bool) {
	for _, g := range s {
		for _, c := range g.Columns {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Column{}, false
}

// Sections classifies every group by position. Groups before the first
// period group are left, groups after the last period group are right,
// and everything in between is center. Without any period group every
// group is left.
func (s Schema) Sections() []Section {
	first, last := -1, -1
	for i, g := range s {
		if g.Type == GroupPeriod {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	out := make([]Section, len(s))
	for i := range s {
		switch {
		case first < 0 || i < first:
			out[i] = SectionLeft
		case i > last:
			out[i] = SectionRight
		default:
			out[i] = SectionCenter
		}
	}
	return out
}

// EmptyGroups returns the labels of groups without columns.
func (s Schema) EmptyGroups() []string {
	var labels []string
	for _, g := range s {
		if len(g.Columns) == 0 {
			labels = append(labels, g.Label)
		}
	}
	return labels
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	var out Schema
	if err := deepcopy.Copy(&out, &s); err != nil {
		out = make(Schema, len(s))
		for i, g := range s {
			out[i] = g
			out[i].Columns = make([]Column, len(g.Columns))
			for j, c := range g.Columns {
				if c.Points != nil {
					p := *c.Points
					c.Points = &p
				}
				out[i].Columns[j] = c
			}
		}
	}
	return out
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
