// File: step.go
// Title: Solving Step
// Description: Undoes the root operation of the left side by applying its
//              inverse to the right side. A division whose divisor holds the
//              variable is resolved by multiplying and swapping sides.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial inverse table

package solver

import (
	"fmt"

	"github.com/msto63/khwarizmi/foundation/algebra/ast"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

// Action describes what one step did to both sides
type Action struct {
	Undone  ast.Kind // operation removed from the left side
	Side    ast.Side // side of the root operation that held the variable
	Operand ast.Expr // known operand moved to the right side
	Swap    bool     // sides were exchanged
}

// String describes the action in words
func (a Action) String() string {
	k := render(a.Operand)
	switch {
	case a.Swap && a.Operand == nil:
		return "swap sides"
	case a.Swap:
		return fmt.Sprintf("multiply both sides by the divisor and swap sides (%s)", k)
	case a.Undone == ast.Add:
		return fmt.Sprintf("subtract %s", k)
	case a.Undone == ast.Sub && a.Side == ast.Right:
		return fmt.Sprintf("subtract from %s and negate", k)
	case a.Undone == ast.Sub:
		return fmt.Sprintf("add %s", k)
	case a.Undone == ast.Mul:
		return fmt.Sprintf("divide by %s", k)
	default:
		return fmt.Sprintf("multiply by %s", k)
	}
}

// SolveStep performs one transition of the solver. The left side must hold
// a variable; otherwise a NO_VARIABLE_PATH error is returned. The resulting
// left side is one operation shallower, except for a division by a
// variable-holding divisor, which turns into a multiplication of the same
// depth on the new left side.
func SolveStep(eq Equation) (Equation, Action, error) {
	path, ok := ast.VariablePath(eq.Left)
	if !ok || len(path) == 0 {
		return eq, Action{}, mdwerror.New("left side holds no variable to isolate").
			WithCode(mdwerror.CodeNoVariablePath).
			WithOperation("solver.SolveStep").
			WithDetail("equation", eq.String())
	}

	root := eq.Left.(ast.BinaryOp)
	side := path[0]
	variable := root.Child(side)
	known := root.Other(side)
	action := Action{Undone: root.Kind, Side: side, Operand: known}

	var right ast.Expr
	switch root.Kind {
	case ast.Add:
		right = ast.NewSub(eq.Right, known)
	case ast.Mul:
		right = ast.NewDiv(eq.Right, known)
	case ast.Sub:
		if side == ast.Right {
			right = ast.NewMul(ast.Constant{Value: -1}, ast.NewSub(eq.Right, known))
		} else {
			right = ast.NewAdd(eq.Right, known)
		}
	case ast.Div:
		if side == ast.Right {
			// a / v = r  becomes  v * r = a
			action.Operand = variable
			action.Swap = true
			return NewEquation(ast.NewMul(variable, eq.Right), known), action, nil
		}
		right = ast.NewMul(known, eq.Right)
	}

	return NewEquation(variable, right), action, nil
}

// StepBudget returns the number of steps needed to isolate the variable of
// left: one per operation on the path, plus one for every division whose
// divisor holds the variable. It returns 0 when left holds no variable.
func StepBudget(left ast.Expr) int {
	budget := 0
	node := left
	for {
		b, ok := node.(ast.BinaryOp)
		if !ok {
			return budget
		}
		path, found := ast.VariablePath(b)
		if !found {
			return 0
		}
		budget++
		if b.Kind == ast.Div && path[0] == ast.Right {
			budget++
		}
		node = b.Child(path[0])
	}
}
