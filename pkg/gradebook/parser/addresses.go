// Package parser decodes gradebook workbooks into schema and roster data.
package parser

import (
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/xuri/excelize/v2"
)

// ColumnAddress returns the address of the n-th column (1-based):
// 1 is "A", 26 is "Z", 27 is "AA". It returns "" when n is out of range.
func ColumnAddress(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return ""
	}
	return name
}

// AddressNumber is the inverse of ColumnAddress.
func AddressNumber(addr string) (int, bool) {
	addr = strings.TrimSpace(strings.ReplaceAll(addr, "$", ""))
	if addr == "" {
		return 0, false
	}
	n, err := excelize.ColumnNameToNumber(addr)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseRange parses a group address range such as "F:H" or "$F:$F"
// into its first and last column numbers. A single address is a range
// of one column.
func ParseRange(id string) (first, last int, ok bool) {
	parts := strings.Split(id, ":")
	if len(parts) > 2 {
		return 0, 0, false
	}

	first, ok = AddressNumber(parts[0])
	if !ok {
		return 0, 0, false
	}
	last = first
	if len(parts) == 2 {
		last, ok = AddressNumber(parts[1])
		if !ok {
			return 0, 0, false
		}
	}
	if last < first {
		first, last = last, first
	}
	return first, last, true
}

// NormalizeAddresses returns a copy of the schema whose column ids are
// reassigned from their absolute left-to-right position, starting at
// "A", and whose group ids are rebuilt as "first:last". Groups without
// columns get an empty id.
func NormalizeAddresses(schema models.Schema) models.Schema {
	out := schema.Clone()

	pos := 0
	for gi := range out {
		group := &out[gi]
		for ci := range group.Columns {
			pos++
			group.Columns[ci].ID = ColumnAddress(pos)
		}
		if len(group.Columns) == 0 {
			group.ID = ""
			continue
		}
		group.ID = group.Columns[0].ID + ":" + group.Columns[len(group.Columns)-1].ID
	}

	return out
}
