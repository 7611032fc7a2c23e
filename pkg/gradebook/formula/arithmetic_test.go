package formula

import (
	"errors"
	"testing"
)

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		expr     string
		expected float64
	}{
		{"1+2", 3},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"10 - 4 - 3", 3},
		{"64 / 4 / 2", 8},
		{"-3+5", 2},
		{"2*-3", -6},
		{"-(2+3)", -5},
		{"+7", 7},
		{"  7 ", 7},
		{".5 * 4", 2},
		{"15 / 20 * 100", 75},
		{"((1))", 1},
	}

	for _, tt := range tests {
		got, err := EvalArithmetic(tt.expr)
		if err != nil {
			t.Errorf("EvalArithmetic(%q) failed: %v", tt.expr, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("EvalArithmetic(%q) = %v, expected %v", tt.expr, got, tt.expected)
		}
	}
}

func TestEvalArithmeticErrors(t *testing.T) {
	tests := []struct {
		expr     string
		expected error
	}{
		{"", ErrSyntax},
		{"2+", ErrSyntax},
		{"(2+3", ErrSyntax},
		{"2+3)", ErrSyntax},
		{"1.2.3", ErrSyntax},
		{"2 3", ErrSyntax},
		{"()", ErrSyntax},
		{"1/0", ErrNotFinite},
		{"0/0", ErrNotFinite},
		{"abc", ErrNotArithmetic},
		{"2^3", ErrNotArithmetic},
		{"0 NP", ErrNotArithmetic},
		{"alert(1)", ErrNotArithmetic},
	}

	for _, tt := range tests {
		_, err := EvalArithmetic(tt.expr)
		if !errors.Is(err, tt.expected) {
			t.Errorf("EvalArithmetic(%q) error = %v, expected %v", tt.expr, err, tt.expected)
		}
	}
}
