// File: format.go
// Title: Result Formatting
// Description: Renders a solved equation as "<variable> = <value>".
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial formatting

package solver

import (
	"fmt"
	"math"

	"github.com/msto63/khwarizmi/foundation/algebra/ast"
)

// UnsolvedPrefix starts the text produced for an equation that did not end
// as a variable equal to a constant.
const UnsolvedPrefix = "Unable to create a string from "

// Solution extracts the variable and value of a solved, folded equation.
// ok is false unless the left side is a variable and the right a constant.
func Solution(eq Equation) (name string, value float64, ok bool) {
	name, isVar := ast.AsVariable(eq.Left)
	value, isConst := ast.AsConstant(eq.Right)
	return name, value, isVar && isConst
}

// Format renders eq as "x = 2". Non-finite values print as +Inf, -Inf or
// NaN. Any other shape yields a diagnostic with the debug rendering.
func Format(eq Equation) string {
	name, value, ok := Solution(eq)
	if !ok {
		return UnsolvedPrefix + eq.Debug()
	}
	return fmt.Sprintf("%s = %s", name, formatValue(value))
}

func formatValue(v float64) string {
	// -1 * 0 folds to -0
	if v == 0 && math.Signbit(v) {
		v = 0
	}
	return ast.FormatNumber(v)
}
