// File: path.go
// Title: Variable Path Finder
// Description: Locates the variable leaf of an expression tree and describes
//              the walk from the root to it as a sequence of branch choices.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial path finder and variable counting

package ast

// Side selects a child of a BinaryOp
type Side int

const (
	Left Side = iota
	Right
)

// String returns a string representation of the side
func (s Side) String() string {
	if s == Left {
		return "Left"
	}
	return "Right"
}

// Child returns the operand of b on side s
func (b BinaryOp) Child(s Side) Expr {
	if s == Left {
		return b.Left
	}
	return b.Right
}

// Other returns the opposite operand of b
func (b BinaryOp) Other(s Side) Expr {
	if s == Left {
		return b.Right
	}
	return b.Left
}

// VariablePath returns the branch choices leading from the root of e to a
// variable leaf. The left child is searched first; when both children hold a
// variable only the left path is reported. ok is false when e contains no
// variable. A bare Variable yields an empty, non-nil path.
func VariablePath(e Expr) (path []Side, ok bool) {
	switch n := e.(type) {
	case Variable:
		return []Side{}, true
	case BinaryOp:
		if rest, found := VariablePath(n.Left); found {
			return append([]Side{Left}, rest...), true
		}
		if rest, found := VariablePath(n.Right); found {
			return append([]Side{Right}, rest...), true
		}
	}
	return nil, false
}

// ContainsVariable reports whether e has at least one variable leaf
func ContainsVariable(e Expr) bool {
	_, ok := VariablePath(e)
	return ok
}

// Variables returns the names of all variable leaves of e in left-to-right
// order, one entry per occurrence.
func Variables(e Expr) []string {
	var names []string
	walk(e, func(n Expr) {
		if v, ok := n.(Variable); ok {
			names = append(names, v.Name)
		}
	})
	return names
}

// CountVariables returns the number of variable leaves in e
func CountVariables(e Expr) int {
	return len(Variables(e))
}

// VariableDepth returns the depth of the first variable leaf of e, i.e. the
// number of operations that must be undone to isolate it. It returns -1 when
// e holds no variable.
func VariableDepth(e Expr) int {
	path, ok := VariablePath(e)
	if !ok {
		return -1
	}
	return len(path)
}

// Size returns the number of nodes in e
func Size(e Expr) int {
	count := 0
	walk(e, func(Expr) { count++ })
	return count
}

func walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	if b, ok := e.(BinaryOp); ok {
		walk(b.Left, visit)
		walk(b.Right, visit)
	}
}
