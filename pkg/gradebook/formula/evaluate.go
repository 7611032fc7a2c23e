package formula

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
)

// Evaluator computes bracket formulas against student rows.
// It keeps no state besides its logger and is safe for concurrent use.
type Evaluator struct {
	log *slog.Logger
}

// NewEvaluator creates an evaluator that reports unresolved references
// to logger. A nil logger uses slog.Default().
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{log: logger}
}

// Evaluate computes formula for one student row. References resolve by
// column label: ":Puntos" reads the schema, anything else reads the row.
// It reports false when the substituted text is not plain arithmetic,
// is malformed, or does not produce a finite number.
func (e *Evaluator) Evaluate(formula string, row models.RosterRow, schema models.Schema) (float64, bool) {
	expr := e.Substitute(formula, row, schema)

	v, err := EvalArithmetic(expr)
	if err != nil {
		e.log.Debug("formula has no result", "formula", formula, "expression", expr, "error", err)
		return 0, false
	}
	return v, true
}

// Substitute replaces every reference of formula with a number literal.
// A leading "=" is dropped. Unresolvable references become 0.
func (e *Evaluator) Substitute(formula string, row models.RosterRow, schema models.Schema) string {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")

	return replaceRefs(formula, func(ref Ref) string {
		if ref.Part == PartPoints {
			return e.points(ref, schema)
		}
		return e.value(ref, row, schema)
	})
}

func (e *Evaluator) points(ref Ref, schema models.Schema) string {
	col, ok := schema.ColumnByLabel(ref.Label)
	if !ok {
		e.log.Warn("formula references unknown column", "label", ref.Label, "part", string(ref.Part))
		return "0"
	}
	if col.Points == nil {
		e.log.Warn("column has no points configured", "label", ref.Label)
		return "0"
	}
	return formatNumber(float64(*col.Points))
}

func (e *Evaluator) value(ref Ref, row models.RosterRow, schema models.Schema) string {
	v, present := row[ref.Label]
	if !present {
		if _, known := schema.ColumnByLabel(ref.Label); !known {
			e.log.Warn("formula references unknown column", "label", ref.Label, "part", string(ref.Part))
		}
		return "0"
	}
	if v.IsEmpty() {
		return "0"
	}
	f, ok := v.Float()
	if !ok {
		e.log.Warn("column value is not numeric", "label", ref.Label, "value", v.String())
		return "0"
	}
	return formatNumber(f)
}

// formatNumber renders f as an arithmetic literal. Negative numbers are
// parenthesized so they stay a single operand.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if f < 0 {
		return "(" + s + ")"
	}
	return s
}

// EvaluateColumn evaluates the formula of the column labelled label for
// one student row. It reports false when the column does not exist or
// has no formula. Nothing is cached between calls.
func (e *Evaluator) EvaluateColumn(label string, row models.RosterRow, schema models.Schema) (float64, bool) {
	col, ok := schema.ColumnByLabel(label)
	if !ok || col.Formula == "" {
		return 0, false
	}
	return e.Evaluate(col.Formula, row, schema)
}

// Recalculate returns a copy of roster in which every computed column
// (formula set and not editable) holds its freshly evaluated value.
// Columns are evaluated once, left to right in schema order, so a formula
// sees the results of computed columns to its left. A formula without a
// result leaves the cell empty.
func (e *Evaluator) Recalculate(roster models.Roster, schema models.Schema) models.Roster {
	var computed []models.Column
	for _, col := range schema.Columns() {
		if col.IsComputed() {
			computed = append(computed, col)
		}
	}

	out := make(models.Roster, len(roster))
	for i, row := range roster {
		r := row.Clone()
		for _, col := range computed {
			if v, ok := e.Evaluate(col.Formula, r, schema); ok {
				r[col.Label] = models.Number(v)
			} else {
				r[col.Label] = models.Empty()
			}
		}
		out[i] = r
	}
	return out
}
