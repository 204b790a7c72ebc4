// Package algebra solves linear equations in one unknown given as text.
//
// Package: algebra
// Title: Linear Equation Engine
// Description: Runs the full pipeline: tokenize, split at "=", parse both
//              sides, isolate the variable step by step, fold the constant
//              side and format the answer. The subpackages lexer, parser, ast
//              and solver hold the individual stages.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Usage:
//
//	engine := algebra.NewEngine(algebra.DefaultOptions())
//	result, err := engine.Solve("2x+3=7")
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Output) // x = 2
package algebra
