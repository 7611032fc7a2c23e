package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
)

// Markers of the configuration sheet grammar.
const (
	MarkerGroup    = "Grupo"
	MarkerColumns  = "Columnas"
	MarkerColor    = "Color"
	MarkerType     = "Tipo"
	MarkerHeader   = "Encabezado"
	MarkerColumn   = "Columna"
	MarkerDate     = "Fecha"
	MarkerPoints   = "Puntos"
	MarkerEditable = "Editable"
	MarkerFormula  = "Formula"
	MarkerEnd      = "..."
)

// Cell positions within the grammar rows (0-based).
const (
	groupLabelCell   = 1
	groupHeaderCell  = 1 // "Columnas", "Color", "Tipo" start here
	columnMarkCell   = 2 // "Encabezado"
	columnLabelCell  = 3
	columnHeaderCell = 3 // "Columna", "Fecha", "Puntos" start here
	columnIDCell     = 3
	columnDateCell   = 4
	columnPointsCell = 5
	columnExtraCell  = 6 // optional "Editable" / "Formula" headers start here
)

// ParseColumnSchema decodes the rows of a configuration sheet into a
// schema. Rows that do not fit the grammar at their position are skipped;
// a missing or unrecognisable sheet yields an empty schema.
// Column and group ids are kept as read; see NormalizeAddresses.
func ParseColumnSchema(rows [][]models.Value) models.Schema {
	p := &schemaParser{rows: rows}

	var schema models.Schema
	for p.pos < len(p.rows) {
		if p.cell(0) != MarkerGroup {
			p.pos++
			continue
		}
		if group, ok := p.parseGroup(); ok {
			schema = append(schema, group)
		}
	}

	return schema
}

type schemaParser struct {
	rows [][]models.Value
	pos  int
}

// cell returns the trimmed text of cell col in the current row.
func (p *schemaParser) cell(col int) string {
	return p.cellAt(p.pos, col)
}

func (p *schemaParser) cellAt(row, col int) string {
	if row < 0 || row >= len(p.rows) || col < 0 || col >= len(p.rows[row]) {
		return ""
	}
	return strings.TrimSpace(p.rows[row][col].String())
}

// matches reports whether the current row holds want starting at col.
func (p *schemaParser) matches(col int, want ...string) bool {
	for i, w := range want {
		if p.cell(col+i) != w {
			return false
		}
	}
	return true
}

// atSentinel reports whether the current row closes a group.
func (p *schemaParser) atSentinel() bool {
	return p.cell(0) == MarkerEnd
}

// parseGroup parses one group block starting at a "Grupo" row.
// It returns false when the block header is malformed; the scan then
// resumes on the row after the marker.
func (p *schemaParser) parseGroup() (models.ColumnGroup, bool) {
	group := models.ColumnGroup{
		Label: p.cell(groupLabelCell),
		Type:  models.GroupColumns,
	}
	p.pos++

	if !p.matches(groupHeaderCell, MarkerColumns, MarkerColor, MarkerType) {
		return group, false
	}
	p.pos++

	if p.pos < len(p.rows) && !p.atSentinel() && p.cell(columnMarkCell) != MarkerHeader {
		group.ID = p.cell(1)
		group.Color = p.cell(2)
		if t, ok := models.ParseGroupType(p.cell(3)); ok {
			group.Type = t
		}
		p.pos++
	}

	for p.pos < len(p.rows) {
		switch {
		case p.atSentinel():
			p.pos++
			return group, true
		case p.cell(0) == MarkerGroup:
			// Next group started without a sentinel: keep what we have.
			return group, true
		case p.cell(columnMarkCell) == MarkerHeader:
			if col, ok := p.parseColumn(); ok {
				group.Columns = append(group.Columns, col)
			}
		default:
			p.pos++
		}
	}

	// End of sheet without a sentinel.
	return group, true
}

// parseColumn parses an "Encabezado" row, its header row and its value
// row. On a shape mismatch it stops before the offending row so the
// group loop can inspect it.
func (p *schemaParser) parseColumn() (models.Column, bool) {
	col := models.Column{
		Label:      p.cell(columnLabelCell),
		IsEditable: true,
	}
	p.pos++

	if !p.matches(columnHeaderCell, MarkerColumn, MarkerDate, MarkerPoints) {
		return col, false
	}
	editableCell, formulaCell := -1, -1
	for c := columnExtraCell; c < columnExtraCell+2; c++ {
		switch p.cell(c) {
		case MarkerEditable:
			editableCell = c
		case MarkerFormula:
			formulaCell = c
		}
	}
	p.pos++

	if p.pos >= len(p.rows) || p.atSentinel() || p.cell(0) == MarkerGroup || p.cell(columnMarkCell) == MarkerHeader {
		return col, false
	}

	col.ID = p.cell(columnIDCell)
	col.Date = p.cell(columnDateCell)
	col.Points = parsePoints(p.rows[p.pos], columnPointsCell)
	if editableCell >= 0 {
		if v := p.cell(editableCell); v != "" {
			col.IsEditable = parseEditable(v)
		}
	}
	if formulaCell >= 0 {
		col.Formula = p.cell(formulaCell)
	}
	p.pos++

	return col, true
}

// parsePoints reads the points cell. "0" is an explicit zero; a blank
// cell or text that is not a number means absent. Decimal values are
// truncated toward zero and negative values are accepted.
func parsePoints(row []models.Value, col int) *int {
	if col >= len(row) {
		return nil
	}
	v := row[col]
	if v.IsEmpty() {
		return nil
	}
	if v.Kind == models.KindText {
		if n, err := strconv.Atoi(strings.TrimSpace(v.Text)); err == nil {
			return models.IntPtr(n)
		}
	}
	f, ok := v.Float()
	if !ok || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	return models.IntPtr(int(f))
}

// parseEditable interprets an editability flag.
func parseEditable(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SI", "SÍ", "TRUE", "1":
		return true
	}
	return false
}
