// File: solve.go
// Title: Solver Loop
// Description: Repeats SolveStep until the left side is the bare variable and
//              records every intermediate equation. The loop is bounded by the
//              step budget of the initial left side.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial solver loop with step guard

package solver

import (
	"github.com/msto63/khwarizmi/foundation/algebra/ast"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

// Options controls the solver loop
type Options struct {
	// SwapSides exchanges the sides first when only the right side holds
	// the variable. Off by default, which reports NO_VARIABLE_PATH instead.
	SwapSides bool

	// OnStep is called after every recorded step
	OnStep func(Step)
}

// Step is one recorded transition. Left and Right are the sides after it.
type Step struct {
	Index  int
	Action Action
	Left   ast.Expr
	Right  ast.Expr
}

// Operation describes the step in words
func (s Step) Operation() string {
	return s.Action.String()
}

// Equation returns the state after the step
func (s Step) Equation() Equation {
	return NewEquation(s.Left, s.Right)
}

// Result is the outcome of a successful solver run
type Result struct {
	Initial Equation
	Final   Equation
	Steps   []Step
}

// stepFunc performs one solver transition
type stepFunc func(Equation) (Equation, Action, error)

// Solve isolates the variable on the left side of eq. The right side of the
// final equation is not folded.
func Solve(eq Equation, opts Options) (*Result, error) {
	return solveWith(eq, opts, SolveStep)
}

// solveWith runs the solver loop with step as the transition. At most
// StepBudget(eq.Left)+1 steps are taken before STEP_LIMIT_EXCEEDED.
func solveWith(eq Equation, opts Options, step stepFunc) (*Result, error) {
	result := &Result{Initial: eq}

	record := func(action Action, state Equation) {
		s := Step{Index: len(result.Steps) + 1, Action: action, Left: state.Left, Right: state.Right}
		result.Steps = append(result.Steps, s)
		if opts.OnStep != nil {
			opts.OnStep(s)
		}
	}

	if opts.SwapSides && !ast.ContainsVariable(eq.Left) && ast.ContainsVariable(eq.Right) {
		eq = eq.Swapped()
		record(Action{Swap: true}, eq)
	}

	limit := StepBudget(eq.Left)
	for taken := 0; !eq.IsSolved(); taken++ {
		if taken > limit {
			return nil, mdwerror.Newf("variable not isolated after %d steps", taken).
				WithCode(mdwerror.CodeStepLimitExceeded).
				WithOperation("solver.Solve").
				WithDetail("equation", eq.String())
		}

		next, action, err := step(eq)
		if err != nil {
			return nil, err
		}
		eq = next
		record(action, eq)
	}

	result.Final = eq
	return result, nil
}
