package models

import (
	"reflect"
	"testing"
)

func group(label string, typ GroupType, labels ...string) ColumnGroup {
	g := ColumnGroup{Label: label, Type: typ}
	for _, l := range labels {
		g.Columns = append(g.Columns, Column{Label: l, IsEditable: true})
	}
	return g
}

func TestSchemaSections(t *testing.T) {
	tests := []struct {
		name     string
		schema   Schema
		expected []Section
	}{
		{
			name: "fixed sections around periods",
			schema: Schema{
				group("Alumno", GroupInfo, "Nombre"),
				group("Extra", GroupColumns, "Grupo"),
				group("P1", GroupPeriod, "Examen"),
				group("Notas", GroupColumns, "Obs"),
				group("P2", GroupPeriod, "Examen 2"),
				group("Final", GroupColumns, "Promedio"),
				group("Firma", GroupInfo, "Firma"),
			},
			expected: []Section{SectionLeft, SectionLeft, SectionCenter, SectionCenter, SectionCenter, SectionRight, SectionRight},
		},
		{
			name:     "no periods",
			schema:   Schema{group("Alumno", GroupInfo, "Nombre"), group("Extra", GroupColumns, "X")},
			expected: []Section{SectionLeft, SectionLeft},
		},
		{
			name:     "empty",
			schema:   Schema{},
			expected: []Section{},
		},
	}

	for _, tt := range tests {
		got := tt.schema.Sections()
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("%s: Sections() = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestSchemaLookups(t *testing.T) {
	s := Schema{group("Alumno", GroupInfo, "Nombre"), group("P1", GroupPeriod, "Examen", "Tarea")}
	s[1].Columns[1].ID = "C"

	if col, ok := s.ColumnByLabel("Tarea"); !ok || col.ID != "C" {
		t.Errorf("ColumnByLabel(Tarea) = %+v, %v", col, ok)
	}
	if _, ok := s.ColumnByLabel("Nope"); ok {
		t.Error("ColumnByLabel(Nope) found a column")
	}
	if col, ok := s.ColumnByID("C"); !ok || col.Label != "Tarea" {
		t.Errorf("ColumnByID(C) = %+v, %v", col, ok)
	}
	if n := len(s.Columns()); n != 3 {
		t.Errorf("Columns() has %d columns, expected 3", n)
	}
}

func TestSchemaEmptyGroups(t *testing.T) {
	s := Schema{group("Alumno", GroupInfo, "Nombre"), group("P1", GroupPeriod), group("P2", GroupPeriod)}

	got := s.EmptyGroups()
	expected := []string{"P1", "P2"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("EmptyGroups() = %v, expected %v", got, expected)
	}
}

func TestSchemaClone(t *testing.T) {
	s := Schema{group("P1", GroupPeriod, "Examen")}
	s[0].Columns[0].Points = IntPtr(10)

	c := s.Clone()
	if !reflect.DeepEqual(s, c) {
		t.Fatalf("Clone() = %+v, expected %+v", c, s)
	}

	*c[0].Columns[0].Points = 20
	c[0].Columns[0].Label = "Otro"
	if *s[0].Columns[0].Points != 10 || s[0].Columns[0].Label != "Examen" {
		t.Error("mutating the clone changed the original")
	}
}

func TestColumnIsComputed(t *testing.T) {
	tests := []struct {
		col      Column
		expected bool
	}{
		{Column{Formula: "[A]*2", IsEditable: false}, true},
		{Column{Formula: "[A]*2", IsEditable: true}, false},
		{Column{Formula: "", IsEditable: false}, false},
	}

	for _, tt := range tests {
		if got := tt.col.IsComputed(); got != tt.expected {
			t.Errorf("%+v.IsComputed() = %v, expected %v", tt.col, got, tt.expected)
		}
	}
}

func TestRosterClone(t *testing.T) {
	r := Roster{{"Examen": Number(8)}}
	c := r.Clone()
	c[0]["Examen"] = Number(10)

	if r[0]["Examen"] != Number(8) {
		t.Errorf("original changed to %+v", r[0]["Examen"])
	}
}
