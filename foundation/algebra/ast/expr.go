// File: expr.go
// Title: Expression Tree
// Description: Defines the immutable expression tree of one equation side:
//              constants, variables and binary arithmetic operations. Trees
//              are built bottom-up and never mutated; every transformation
//              returns a new tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial expression types and rendering

package ast

import (
	"fmt"
	"strconv"
)

// Kind identifies the arithmetic operation of a BinaryOp
type Kind int

const (
	Add Kind = iota
	Sub
	Mul
	Div
)

// String returns the operation name used in debug renderings
func (k Kind) String() string {
	switch k {
	case Add:
		return "Addition"
	case Sub:
		return "Subtraction"
	case Mul:
		return "Multiplication"
	case Div:
		return "Division"
	default:
		return "Unknown"
	}
}

// Symbol returns the infix operator symbol
func (k Kind) Symbol() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// KindFromSymbol maps an operator symbol to its Kind
func KindFromSymbol(symbol string) (Kind, bool) {
	switch symbol {
	case "+":
		return Add, true
	case "-":
		return Sub, true
	case "*":
		return Mul, true
	case "/":
		return Div, true
	}
	return 0, false
}

// Apply evaluates a <op> b with native float64 arithmetic.
// Division by zero yields ±Inf or NaN.
func (k Kind) Apply(a, b float64) float64 {
	switch k {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	default:
		return a / b
	}
}

// Expr is a node of an expression tree. The set of implementations is closed:
// Constant, Variable and BinaryOp.
type Expr interface {
	// String renders the node in infix notation
	String() string
	// Debug renders the node structurally, e.g. Addition(Constant(2), Variable(x))
	Debug() string

	node()
}

// Constant is a numeric leaf
type Constant struct {
	Value float64
}

// Variable is the unknown to isolate
type Variable struct {
	Name string
}

// BinaryOp applies Kind to two operands
type BinaryOp struct {
	Kind  Kind
	Left  Expr
	Right Expr
}

func (Constant) node() {}
func (Variable) node() {}
func (BinaryOp) node() {}

// NewBinary creates a binary operation node
func NewBinary(kind Kind, left, right Expr) BinaryOp {
	return BinaryOp{Kind: kind, Left: left, Right: right}
}

// NewAdd creates left + right
func NewAdd(left, right Expr) BinaryOp { return NewBinary(Add, left, right) }

// NewSub creates left - right
func NewSub(left, right Expr) BinaryOp { return NewBinary(Sub, left, right) }

// NewMul creates left * right
func NewMul(left, right Expr) BinaryOp { return NewBinary(Mul, left, right) }

// NewDiv creates left / right
func NewDiv(left, right Expr) BinaryOp { return NewBinary(Div, left, right) }

// FormatNumber formats v in the shortest representation that round-trips
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (c Constant) String() string {
	return FormatNumber(c.Value)
}

func (c Constant) Debug() string {
	return fmt.Sprintf("Constant(%s)", FormatNumber(c.Value))
}

func (v Variable) String() string {
	return v.Name
}

func (v Variable) Debug() string {
	return fmt.Sprintf("Variable(%s)", v.Name)
}

// String renders the operation with parentheses around nested operations,
// so the rendering shows the tree shape rather than relying on precedence.
func (b BinaryOp) String() string {
	return fmt.Sprintf("%s %s %s", operand(b.Left), b.Kind.Symbol(), operand(b.Right))
}

func (b BinaryOp) Debug() string {
	return fmt.Sprintf("%s(%s, %s)", b.Kind, debugOf(b.Left), debugOf(b.Right))
}

func operand(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "<nil>"
	case BinaryOp:
		return "(" + n.String() + ")"
	case Constant:
		if n.Value < 0 {
			return "(" + n.String() + ")"
		}
		return n.String()
	default:
		return n.String()
	}
}

func debugOf(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.Debug()
}

// Equal reports whether a and b are structurally identical trees.
// Constants compare by value, so NaN never equals NaN.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Constant:
		y, ok := b.(Constant)
		return ok && x.Value == y.Value
	case Variable:
		y, ok := b.(Variable)
		return ok && x.Name == y.Name
	case BinaryOp:
		y, ok := b.(BinaryOp)
		return ok && x.Kind == y.Kind && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return a == nil && b == nil
	}
}

// AsConstant returns the value of e if e is a Constant leaf
func AsConstant(e Expr) (float64, bool) {
	c, ok := e.(Constant)
	return c.Value, ok
}

// AsVariable returns the name of e if e is a Variable leaf
func AsVariable(e Expr) (string, bool) {
	v, ok := e.(Variable)
	return v.Name, ok
}
