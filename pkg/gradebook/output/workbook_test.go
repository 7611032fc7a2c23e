package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/parser"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookRoundTrip(t *testing.T) {
	schema := sampleSchema()

	data, err := WriteWorkbook(schema, sampleRoster(), DefaultOptions())
	if err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	wb, err := parser.ReadWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	if wb.Data.Name != DefaultDataSheet {
		t.Errorf("Expected data sheet %q, got %q", DefaultDataSheet, wb.Data.Name)
	}
	if wb.Config == nil || wb.Config.Name != DefaultConfigSheet {
		t.Fatalf("Expected config sheet %q, got %+v", DefaultConfigSheet, wb.Config)
	}

	equalSchema(t, parser.ParseColumnSchema(wb.Config.Rows), parser.NormalizeAddresses(schema))

	roster := parser.IngestRosterBlock(wb.Data.Rows, models.HeaderBlockRows)
	if len(roster) != 2 {
		t.Fatalf("Expected 2 students, got %d", len(roster))
	}
	if roster[0]["Nombre"] != models.Text("Ana") || roster[0]["Examen"] != models.Number(9) {
		t.Errorf("Unexpected first student: %+v", roster[0])
	}
	if roster[1]["Examen"] != models.Number(7.5) {
		t.Errorf("Unexpected second student: %+v", roster[1])
	}

	if got := wb.Formulas["E"]; got != "C4 + D4" {
		t.Errorf("Expected native formula C4 + D4 for Total, got %q", got)
	}
}

func TestWriteWorkbookWithoutFormulas(t *testing.T) {
	opts := DefaultOptions()
	opts.NativeFormulas = false

	data, err := WriteWorkbook(sampleSchema(), sampleRoster(), opts)
	if err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}
	wb, err := parser.ReadWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	if len(wb.Formulas) != 0 {
		t.Errorf("Expected no native formulas, got %v", wb.Formulas)
	}
}

func TestWriteWorkbookStyles(t *testing.T) {
	data, err := WriteWorkbook(sampleSchema(), sampleRoster(), DefaultOptions())
	if err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	styleID, err := f.GetCellStyle(DefaultDataSheet, "A1")
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle failed: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Errorf("Expected bold label cell, got %+v", style.Font)
	}
	if len(style.Fill.Color) == 0 || !strings.Contains(strings.ToUpper(style.Fill.Color[0]), "1E40AF") {
		t.Errorf("Expected group color fill, got %+v", style.Fill)
	}
}
