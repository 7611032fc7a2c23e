// Package models defines data structures for gradebook workbooks.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindEmpty is a blank cell.
	KindEmpty Kind = iota
	// KindNumber is a numeric cell.
	KindNumber
	// KindText is a text cell.
	KindText
)

// Value is a single cell value: empty, number or text.
type Value struct {
	// Kind selects which of Num or Text is meaningful.
	Kind Kind
	// Num is the numeric value when Kind is KindNumber.
	Num float64
	// Text is the text value when Kind is KindText.
	Text string
}

// Empty returns a blank cell value.
func Empty() Value { return Value{} }

// Number returns a numeric cell value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text returns a text cell value. Blank text collapses to Empty.
func Text(s string) Value {
	if s == "" {
		return Empty()
	}
	return Value{Kind: KindText, Text: s}
}

// ParseValue converts a raw cell string into a Value.
// Numeric strings become numbers, blank strings become Empty,
// everything else is kept as text.
func ParseValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Empty()
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Number(f)
	}
	return Text(s)
}

// IsEmpty reports whether the value is blank.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty || (v.Kind == KindText && strings.TrimSpace(v.Text) == "")
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// Float coerces the value to a number. Numbers convert directly,
// text converts when it parses as a finite float. Empty and
// non-numeric text report false.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, !math.IsInf(v.Num, 0) && !math.IsNaN(v.Num)
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String renders the value the way it is written into a sheet.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	}
	return ""
}

// Interface returns the value as nil, float64 or string, suitable for
// handing to a spreadsheet writer.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindText:
		return v.Text
	}
	return nil
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and
// empty cells as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = Number(x)
	case string:
		*v = Text(x)
	default:
		*v = Empty()
	}
	return nil
}
