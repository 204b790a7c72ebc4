// File: equation.go
// Title: Equation State
// Description: The (left, right) expression pair that the solver rewrites step
//              by step until the left side is the bare variable.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial equation state

package solver

import (
	"fmt"

	"github.com/msto63/khwarizmi/foundation/algebra/ast"
)

// Equation is one state of the equation being solved. Both sides are
// immutable trees; each solving step produces a new Equation.
type Equation struct {
	Left  ast.Expr
	Right ast.Expr
}

// NewEquation creates an equation from its two sides
func NewEquation(left, right ast.Expr) Equation {
	return Equation{Left: left, Right: right}
}

// IsSolved reports whether the left side is a bare variable
func (e Equation) IsSolved() bool {
	_, ok := ast.AsVariable(e.Left)
	return ok
}

// Swapped returns the equation with its sides exchanged
func (e Equation) Swapped() Equation {
	return Equation{Left: e.Right, Right: e.Left}
}

// String renders the equation in infix notation
func (e Equation) String() string {
	return fmt.Sprintf("%s = %s", render(e.Left), render(e.Right))
}

// Debug renders the equation structurally
func (e Equation) Debug() string {
	return fmt.Sprintf("Equation { left: %s, right: %s }", debug(e.Left), debug(e.Right))
}

func render(e ast.Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

func debug(e ast.Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.Debug()
}
