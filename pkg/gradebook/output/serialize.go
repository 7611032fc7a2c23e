// Package output renders gradebook schema and roster data back into
// sheet rows, workbooks and JSON.
package output

import (
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/parser"
)

// Editability flags written to the configuration sheet.
const (
	editableYes = "SI"
	editableNo  = "NO"
)

// SerializeSchema renders the schema as configuration sheet rows, the
// inverse of parser.ParseColumnSchema. Addresses are normalized first so
// the written ids always follow column order.
func SerializeSchema(schema models.Schema) [][]models.Value {
	schema = parser.NormalizeAddresses(schema)

	var rows [][]models.Value
	for _, group := range schema {
		rows = append(rows,
			row(parser.MarkerGroup, group.Label),
			row("", parser.MarkerColumns, parser.MarkerColor, parser.MarkerType),
			row("", group.ID, group.Color, string(group.Type)),
		)
		for _, col := range group.Columns {
			rows = append(rows,
				row("", "", parser.MarkerHeader, col.Label),
				row("", "", "", parser.MarkerColumn, parser.MarkerDate, parser.MarkerPoints, parser.MarkerEditable, parser.MarkerFormula),
				columnValueRow(col),
			)
		}
		rows = append(rows, row(parser.MarkerEnd))
	}

	return rows
}

func columnValueRow(col models.Column) []models.Value {
	editable := editableNo
	if col.IsEditable {
		editable = editableYes
	}
	r := row("", "", "", col.ID, col.Date, "", editable, col.Formula)
	r[5] = pointsValue(col.Points)
	return r
}

// SerializeRoster renders the data sheet: the label, date and points
// header rows followed by one row per student, in schema column order.
// Roster keys that are not schema columns are not written.
func SerializeRoster(schema models.Schema, roster models.Roster) [][]models.Value {
	cols := schema.Columns()

	labels := make([]models.Value, len(cols))
	dates := make([]models.Value, len(cols))
	points := make([]models.Value, len(cols))
	for i, col := range cols {
		labels[i] = models.Text(col.Label)
		dates[i] = models.Text(col.Date)
		points[i] = pointsValue(col.Points)
	}

	rows := make([][]models.Value, 0, models.HeaderBlockRows+len(roster))
	rows = append(rows, labels, dates, points)
	for _, student := range roster {
		r := make([]models.Value, len(cols))
		for i, col := range cols {
			r[i] = student.Get(col.Label)
		}
		rows = append(rows, r)
	}

	return rows
}

func pointsValue(p *int) models.Value {
	if p == nil {
		return models.Empty()
	}
	return models.Number(float64(*p))
}

func row(cells ...string) []models.Value {
	out := make([]models.Value, len(cells))
	for i, c := range cells {
		out[i] = models.Text(c)
	}
	return out
}
