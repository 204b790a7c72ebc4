// File: fold.go
// Title: Constant Folding
// Description: Collapses constant-only subtrees into single constants.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial constant folder

package ast

// Fold returns an equivalent tree in which every operation whose operands
// both fold to constants is replaced by its value. Subtrees holding a
// variable keep their shape but have their constant parts folded. Folding is
// pure and idempotent; division by zero produces ±Inf or NaN.
func Fold(e Expr) Expr {
	b, ok := e.(BinaryOp)
	if !ok {
		return e
	}

	left := Fold(b.Left)
	right := Fold(b.Right)

	a, leftConst := AsConstant(left)
	c, rightConst := AsConstant(right)
	if leftConst && rightConst {
		return Constant{Value: b.Kind.Apply(a, c)}
	}

	return BinaryOp{Kind: b.Kind, Left: left, Right: right}
}

// Evaluate computes the value of e with the given variable bindings.
// ok is false when e references a variable without a binding.
func Evaluate(e Expr, bindings map[string]float64) (value float64, ok bool) {
	switch n := e.(type) {
	case Constant:
		return n.Value, true
	case Variable:
		value, ok = bindings[n.Name]
		return value, ok
	case BinaryOp:
		a, ok := Evaluate(n.Left, bindings)
		if !ok {
			return 0, false
		}
		b, ok := Evaluate(n.Right, bindings)
		if !ok {
			return 0, false
		}
		return n.Kind.Apply(a, b), true
	}
	return 0, false
}
