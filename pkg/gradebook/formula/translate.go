package formula

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
)

// nativeRefPattern matches A1-style references, with optional "$" anchors.
var nativeRefPattern = regexp.MustCompile(`(\$?)\b([A-Z]{1,3})(\$?)([0-9]+)\b`)

// ToNative translates a bracket formula into a native spreadsheet
// formula for the given 1-based worksheet row.
//
// "[L:Puntos]" becomes an absolute reference to the points row of the
// column labelled L, "[L]" and "[L:Valor]" become a reference to the
// same column on row. References to unknown labels become 0. The schema
// is expected to carry normalized addresses.
func ToNative(formula string, row int, schema models.Schema) string {
	out := replaceRefs(strings.TrimSpace(formula), func(ref Ref) string {
		col, ok := schema.ColumnByLabel(ref.Label)
		if !ok || col.ID == "" {
			return "0"
		}
		if ref.Part == PartPoints {
			return "$" + col.ID + "$" + strconv.Itoa(models.PointsRow)
		}
		return col.ID + strconv.Itoa(row)
	})

	if !strings.HasPrefix(out, "=") {
		out = "=" + out
	}
	return out
}

// FromNative translates a native formula back into bracket notation.
// Absolute references to the points row become "[L:Puntos]", any other
// reference becomes "[L]". References to unknown addresses become 0.
// It inverts ToNative; arbitrary native formulas are translated on a
// best-effort basis.
func FromNative(native string, schema models.Schema) string {
	native = strings.TrimPrefix(strings.TrimSpace(native), "=")

	return nativeRefPattern.ReplaceAllStringFunc(native, func(tok string) string {
		m := nativeRefPattern.FindStringSubmatch(tok)
		col, ok := schema.ColumnByID(m[2])
		if !ok {
			return "0"
		}
		rowAbs, row := m[3], m[4]
		if rowAbs == "$" && row == strconv.Itoa(models.PointsRow) {
			return Ref{Label: col.Label, Part: PartPoints}.String()
		}
		return Ref{Label: col.Label, Part: PartValue}.String()
	})
}
