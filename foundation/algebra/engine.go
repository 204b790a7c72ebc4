// File: engine.go
// Title: Linear Equation Engine
// Description: Drives an equation string through the lexer, parser, solver
//              and constant folder and returns the formatted answer together
//              with the derivation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine

package algebra

import (
	"math"
	"strings"

	"github.com/msto63/khwarizmi/foundation/algebra/ast"
	"github.com/msto63/khwarizmi/foundation/algebra/lexer"
	"github.com/msto63/khwarizmi/foundation/algebra/parser"
	"github.com/msto63/khwarizmi/foundation/algebra/solver"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	mdwlog "github.com/msto63/khwarizmi/foundation/core/log"
)

// Options configures an Engine
type Options struct {
	// StrictDivision turns a non-finite answer caused by a zero divisor
	// into a DIVISION_BY_ZERO error. When false the answer prints as
	// +Inf, -Inf or NaN.
	StrictDivision bool

	// SwapSides allows equations whose variable is only on the right side
	SwapSides bool

	// Logger receives debug output for every step. Nil uses the default logger.
	Logger *mdwlog.Logger
}

// DefaultOptions returns strict division without side swapping
func DefaultOptions() Options {
	return Options{StrictDivision: true}
}

// Result is a solved equation
type Result struct {
	Input    string
	Tokens   lexer.Tokens
	Initial  solver.Equation
	Steps    []solver.Step
	Final    solver.Equation // right side folded
	Variable string
	Value    float64
	Solved   bool // Final is variable = constant
	Output   string
}

// Engine solves equations. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	options Options
	logger  *mdwlog.Logger
}

// NewEngine creates an engine with the given options
func NewEngine(options Options) *Engine {
	logger := options.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Engine{
		options: options,
		logger:  logger.WithName("algebra"),
	}
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.options
}

// Solve solves input and returns its result
func (e *Engine) Solve(input string) (*Result, error) {
	return e.SolveWithSteps(input, nil)
}

// SolveWithSteps solves input and calls onStep for every step as it is taken
func (e *Engine) SolveWithSteps(input string, onStep func(solver.Step)) (result *Result, err error) {
	timer := e.logger.StartTimer("solve").WithField("input", input)
	defer func() {
		// failures are reported by the caller; only the code is kept here
		if err != nil {
			timer.WithField("code", string(mdwerror.GetCode(err)))
		}
		timer.Stop()
	}()

	tokens := lexer.Tokenize(input)
	e.logger.Debug("tokenized", mdwlog.Fields{"tokens": tokens.String()})

	left, right, err := lexer.Split(tokens)
	if err != nil {
		return nil, err
	}

	leftExpr, err := parser.Parse(left)
	if err != nil {
		return nil, mdwerror.Wrap(err, "cannot parse left side")
	}
	rightExpr, err := parser.Parse(right)
	if err != nil {
		return nil, mdwerror.Wrap(err, "cannot parse right side")
	}

	initial := solver.NewEquation(leftExpr, rightExpr)
	if err := checkSingleVariable(initial); err != nil {
		return nil, err
	}

	solved, err := solver.Solve(initial, solver.Options{
		SwapSides: e.options.SwapSides,
		OnStep: func(step solver.Step) {
			e.logger.Debug("step", mdwlog.Fields{
				"index":     step.Index,
				"operation": step.Operation(),
				"equation":  step.Equation().String(),
			})
			if onStep != nil {
				onStep(step)
			}
		},
	})
	if err != nil {
		return nil, err
	}

	final := solver.NewEquation(solved.Final.Left, ast.Fold(solved.Final.Right))
	name, value, ok := solver.Solution(final)

	if ok && e.options.StrictDivision && (math.IsInf(value, 0) || math.IsNaN(value)) {
		return nil, nonFinite(solved.Final.Right, value)
	}

	return &Result{
		Input:    input,
		Tokens:   tokens,
		Initial:  initial,
		Steps:    solved.Steps,
		Final:    final,
		Variable: name,
		Value:    value,
		Solved:   ok,
		Output:   solver.Format(final),
	}, nil
}

// Solve solves input with DefaultOptions and returns the formatted answer
func Solve(input string) (string, error) {
	result, err := NewEngine(DefaultOptions()).Solve(input)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// Canonical returns the token texts of input joined by single spaces,
// including inserted multiplications. Inputs with equal canonical forms
// solve identically; "2 3x" and "23x" do not share one.
func Canonical(input string) string {
	return lexer.Tokenize(input).String()
}

func checkSingleVariable(eq solver.Equation) error {
	names := append(ast.Variables(eq.Left), ast.Variables(eq.Right)...)
	if len(names) <= 1 {
		return nil
	}
	return mdwerror.Newf("equation must contain exactly one variable occurrence, found %d", len(names)).
		WithCode(mdwerror.CodeMultipleVariables).
		WithOperation("algebra.Solve").
		WithDetail("variables", strings.Join(names, ","))
}

func nonFinite(unfolded ast.Expr, value float64) error {
	if hasZeroDivisor(unfolded) {
		return mdwerror.New("division by zero").
			WithCode(mdwerror.CodeDivisionByZero).
			WithOperation("algebra.Solve").
			WithDetail("expression", unfolded.String())
	}
	return mdwerror.Newf("result %s is not finite", ast.FormatNumber(value)).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("algebra.Solve").
		WithDetail("expression", unfolded.String())
}

// hasZeroDivisor reports whether any division in e has a divisor folding to 0
func hasZeroDivisor(e ast.Expr) bool {
	b, ok := e.(ast.BinaryOp)
	if !ok {
		return false
	}
	if b.Kind == ast.Div {
		if v, ok := ast.AsConstant(ast.Fold(b.Right)); ok && v == 0 {
			return true
		}
	}
	return hasZeroDivisor(b.Left) || hasZeroDivisor(b.Right)
}
