package ast

import (
	"math"
	"reflect"
	"testing"
)

var (
	two   = Constant{Value: 2}
	three = Constant{Value: 3}
	x     = Variable{Name: "x"}
)

func TestVariablePath(t *testing.T) {
	tests := []struct {
		name   string
		expr   Expr
		want   []Side
		wantOK bool
	}{
		{"bare variable", x, []Side{}, true},
		{"constant", two, nil, false},
		{"left operand", NewMul(x, two), []Side{Left}, true},
		{"right operand", NewMul(two, x), []Side{Right}, true},
		{"nested", NewAdd(NewMul(two, x), three), []Side{Left, Right}, true},
		{"constant only operation", NewAdd(two, three), nil, false},
		{"left preferred", NewAdd(NewMul(two, x), Variable{Name: "y"}), []Side{Left, Right}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VariablePath(tt.expr)
			if ok != tt.wantOK {
				t.Fatalf("VariablePath() ok = %v, want %v", ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VariablePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVariablesAndDepth(t *testing.T) {
	tree := NewAdd(NewMul(two, x), NewDiv(Variable{Name: "y"}, x))

	if got := Variables(tree); !reflect.DeepEqual(got, []string{"x", "y", "x"}) {
		t.Errorf("Variables() = %v", got)
	}
	if got := CountVariables(tree); got != 3 {
		t.Errorf("CountVariables() = %d, want 3", got)
	}
	if got := VariableDepth(tree); got != 2 {
		t.Errorf("VariableDepth() = %d, want 2", got)
	}
	if got := VariableDepth(three); got != -1 {
		t.Errorf("VariableDepth(constant) = %d, want -1", got)
	}
	if got := Size(tree); got != 7 {
		t.Errorf("Size() = %d, want 7", got)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want Expr
	}{
		{"constant", two, two},
		{"variable", x, x},
		{"addition", NewAdd(two, three), Constant{Value: 5}},
		{"nested", NewDiv(NewSub(Constant{Value: 7}, three), two), two},
		{"negation", NewMul(Constant{Value: -1}, NewSub(Constant{Value: 10}, Constant{Value: 5})), Constant{Value: -5}},
		{"variable kept", NewAdd(x, NewMul(two, three)), NewAdd(x, Constant{Value: 6})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(tt.expr)
			if !Equal(got, tt.want) {
				t.Errorf("Fold(%s) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestFold_Idempotent(t *testing.T) {
	inputs := []Expr{
		Constant{Value: 4},
		NewSub(NewMul(two, three), Constant{Value: 1}),
		NewAdd(x, NewDiv(Constant{Value: 9}, three)),
	}

	for _, in := range inputs {
		once := Fold(in)
		twice := Fold(once)
		if !Equal(once, twice) {
			t.Errorf("Fold not idempotent for %s: %s then %s", in, once, twice)
		}
	}
}

func TestFold_DivisionByZero(t *testing.T) {
	got, ok := AsConstant(Fold(NewDiv(Constant{Value: 5}, Constant{Value: 0})))
	if !ok || !math.IsInf(got, 1) {
		t.Errorf("5/0 = %v, want +Inf", got)
	}

	got, ok = AsConstant(Fold(NewDiv(Constant{Value: 0}, Constant{Value: 0})))
	if !ok || !math.IsNaN(got) {
		t.Errorf("0/0 = %v, want NaN", got)
	}
}

func TestEvaluate(t *testing.T) {
	tree := NewAdd(NewMul(two, x), three)

	got, ok := Evaluate(tree, map[string]float64{"x": 2})
	if !ok || got != 7 {
		t.Errorf("Evaluate() = %v, %v, want 7, true", got, ok)
	}

	if _, ok := Evaluate(tree, nil); ok {
		t.Error("Evaluate() without binding should fail")
	}
}

func TestRendering(t *testing.T) {
	tree := NewAdd(NewMul(two, x), Constant{Value: -1.5})

	if got, want := tree.String(), "(2 * x) + (-1.5)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := tree.Debug(), "Addition(Multiplication(Constant(2), Variable(x)), Constant(-1.5))"; got != want {
		t.Errorf("Debug() = %q, want %q", got, want)
	}
}

func TestKindFromSymbol(t *testing.T) {
	for _, k := range []Kind{Add, Sub, Mul, Div} {
		got, ok := KindFromSymbol(k.Symbol())
		if !ok || got != k {
			t.Errorf("KindFromSymbol(%q) = %v, %v", k.Symbol(), got, ok)
		}
	}
	if _, ok := KindFromSymbol("="); ok {
		t.Error("KindFromSymbol(=) should fail")
	}
}
