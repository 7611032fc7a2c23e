// Package formula translates and evaluates bracket-notation formulas.
//
// A bracket formula interleaves column references with arithmetic:
//
//	[Examen] / [Examen:Puntos] * 100
//
// A reference names a column by its label. The optional part selects the
// student's value (":Valor", the default) or the column's configured
// maximum (":Puntos"). Column addresses never appear inside brackets;
// they only exist in native spreadsheet formulas.
package formula

import (
	"regexp"
	"strings"
)

// Part selects what a bracket reference resolves to.
type Part string

const (
	// PartValue is the student's cell value.
	PartValue Part = "Valor"
	// PartPoints is the column's configured points.
	PartPoints Part = "Puntos"
)

// Ref is a parsed bracket reference.
type Ref struct {
	Label string
	Part  Part
}

// String renders the reference in canonical form; the default part is
// omitted.
func (r Ref) String() string {
	if r.Part == PartPoints {
		return "[" + r.Label + ":" + string(PartPoints) + "]"
	}
	return "[" + r.Label + "]"
}

var tokenPattern = regexp.MustCompile(`\[([^\[\]]*)\]`)

// ParseRef parses the content of a bracket token (without brackets).
// Only a trailing ":Valor" or ":Puntos" is treated as a part selector,
// so labels may themselves contain colons.
func ParseRef(content string) Ref {
	content = strings.TrimSpace(content)
	if i := strings.LastIndex(content, ":"); i >= 0 {
		label := strings.TrimSpace(content[:i])
		switch Part(strings.TrimSpace(content[i+1:])) {
		case PartPoints:
			return Ref{Label: label, Part: PartPoints}
		case PartValue:
			return Ref{Label: label, Part: PartValue}
		}
	}
	return Ref{Label: content, Part: PartValue}
}

// References lists the references of a formula in order of appearance.
func References(formula string) []Ref {
	matches := tokenPattern.FindAllStringSubmatch(formula, -1)
	refs := make([]Ref, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, ParseRef(m[1]))
	}
	return refs
}

// Canonical rewrites every reference of a formula in canonical form
// ("[X:Valor]" becomes "[X]").
func Canonical(formula string) string {
	return tokenPattern.ReplaceAllStringFunc(formula, func(tok string) string {
		return ParseRef(tok[1 : len(tok)-1]).String()
	})
}

// replaceRefs substitutes every bracket token of formula with fn's result.
func replaceRefs(formula string, fn func(Ref) string) string {
	return tokenPattern.ReplaceAllStringFunc(formula, func(tok string) string {
		return fn(ParseRef(tok[1 : len(tok)-1]))
	})
}
