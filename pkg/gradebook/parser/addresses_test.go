package parser

import (
	"fmt"
	"testing"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
)

func TestColumnAddress(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
		{0, ""},
	}

	for _, tt := range tests {
		if got := ColumnAddress(tt.n); got != tt.expected {
			t.Errorf("ColumnAddress(%d) = %q, expected %q", tt.n, got, tt.expected)
		}
		if tt.expected == "" {
			continue
		}
		if n, ok := AddressNumber(tt.expected); !ok || n != tt.n {
			t.Errorf("AddressNumber(%q) = %d, %v, expected %d", tt.expected, n, ok, tt.n)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		id          string
		first, last int
		ok          bool
	}{
		{"F:F", 6, 6, true},
		{"A:C", 1, 3, true},
		{"$B:$D", 2, 4, true},
		{"D:B", 2, 4, true},
		{"AA", 27, 27, true},
		{"", 0, 0, false},
		{"A:B:C", 0, 0, false},
		{"1:2", 0, 0, false},
	}

	for _, tt := range tests {
		first, last, ok := ParseRange(tt.id)
		if first != tt.first || last != tt.last || ok != tt.ok {
			t.Errorf("ParseRange(%q) = (%d, %d, %v), expected (%d, %d, %v)",
				tt.id, first, last, ok, tt.first, tt.last, tt.ok)
		}
	}
}

func TestNormalizeAddressesDeterminism(t *testing.T) {
	groupings := [][]int{
		{1},
		{3, 2, 5},
		{26, 1},
		{10, 10, 10, 10, 10, 10, 10, 10},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}

	for _, sizes := range groupings {
		var schema models.Schema
		for gi, size := range sizes {
			g := models.ColumnGroup{ID: "stale", Label: fmt.Sprintf("G%d", gi)}
			for ci := 0; ci < size; ci++ {
				g.Columns = append(g.Columns, models.Column{ID: "ZZ", Label: fmt.Sprintf("C%d-%d", gi, ci)})
			}
			schema = append(schema, g)
		}

		out := NormalizeAddresses(schema)
		pos := 0
		for _, g := range out {
			for _, c := range g.Columns {
				pos++
				if c.ID != ColumnAddress(pos) {
					t.Errorf("sizes %v: column %d has id %q, expected %q", sizes, pos, c.ID, ColumnAddress(pos))
				}
			}
			first, last, ok := ParseRange(g.ID)
			if !ok || first != pos-len(g.Columns)+1 || last != pos {
				t.Errorf("sizes %v: group %q has id %q", sizes, g.Label, g.ID)
			}
		}

		if schema[0].ID != "stale" {
			t.Error("NormalizeAddresses modified its input")
		}
	}
}

func TestNormalizeAddressesEmptyGroup(t *testing.T) {
	schema := models.Schema{
		{Label: "A", Columns: []models.Column{{Label: "x"}}},
		{ID: "B:B", Label: "B"},
		{Label: "C", Columns: []models.Column{{Label: "y"}}},
	}

	out := NormalizeAddresses(schema)
	if out[0].ID != "A:A" || out[1].ID != "" || out[2].ID != "B:B" {
		t.Errorf("unexpected group ids: %q %q %q", out[0].ID, out[1].ID, out[2].ID)
	}
}
