package solver

import (
	"strings"
	"testing"

	"github.com/msto63/khwarizmi/foundation/algebra/ast"
	"github.com/msto63/khwarizmi/foundation/algebra/lexer"
	"github.com/msto63/khwarizmi/foundation/algebra/parser"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

func parseEquation(t *testing.T, input string) Equation {
	t.Helper()

	left, right, err := lexer.Split(lexer.Tokenize(input))
	if err != nil {
		t.Fatalf("Split(%q) error = %v", input, err)
	}
	l, err := parser.Parse(left)
	if err != nil {
		t.Fatalf("Parse(left of %q) error = %v", input, err)
	}
	r, err := parser.Parse(right)
	if err != nil {
		t.Fatalf("Parse(right of %q) error = %v", input, err)
	}
	return NewEquation(l, r)
}

func solveAndFormat(t *testing.T, input string, opts Options) (string, *Result) {
	t.Helper()

	result, err := Solve(parseEquation(t, input), opts)
	if err != nil {
		t.Fatalf("Solve(%q) error = %v", input, err)
	}
	final := NewEquation(result.Final.Left, ast.Fold(result.Final.Right))
	return Format(final), result
}

func TestSolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
		steps int
	}{
		{"2x+3=7", "x = 2", 2},
		{"x-5=10", "x = 15", 1},
		{"3x=9", "x = 3", 1},
		{"10/x=2", "x = 5", 2},
		{"5-x=10", "x = -5", 1},
		{"x/4=2", "x = 8", 1},
		{"x=5", "x = 5", 0},
		{"1.5y=3", "y = 2", 1},
		{"2x+3=8", "x = 2.5", 2},
		{"5-x=5", "x = 0", 1},
		{"12/3/x=2", "x = 0.5", 4},
		{"x+1=2+3", "x = 4", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, result := solveAndFormat(t, tt.input, Options{})
			if got != tt.want {
				t.Errorf("Solve(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if len(result.Steps) != tt.steps {
				t.Errorf("steps = %d, want %d", len(result.Steps), tt.steps)
			}
		})
	}
}

func TestSolve_StepsMatchDepth(t *testing.T) {
	for _, input := range []string{"2x+3=7", "x-5=10", "3x=9", "x/4=2", "5-x=1", "2x-4=6"} {
		eq := parseEquation(t, input)
		depth := ast.VariableDepth(eq.Left)

		result, err := Solve(eq, Options{})
		if err != nil {
			t.Fatalf("Solve(%q) error = %v", input, err)
		}
		if len(result.Steps) != depth {
			t.Errorf("%q: steps = %d, want depth %d", input, len(result.Steps), depth)
		}
		if name, ok := ast.AsVariable(result.Final.Left); !ok || name != "x" {
			t.Errorf("%q: final left = %s, want x", input, result.Final.Left)
		}
	}
}

func TestSolve_DivisionSwap(t *testing.T) {
	eq := parseEquation(t, "10/x=2")

	next, action, err := SolveStep(eq)
	if err != nil {
		t.Fatalf("SolveStep() error = %v", err)
	}
	if !action.Swap {
		t.Error("division by the variable should swap sides")
	}
	if got, want := next.String(), "x * 2 = 10"; got != want {
		t.Errorf("after swap = %q, want %q", got, want)
	}
}

func TestSolveStep_InverseTable(t *testing.T) {
	k := ast.Constant{Value: 3}
	v := ast.Variable{Name: "x"}
	r := ast.Constant{Value: 7}

	tests := []struct {
		name      string
		left      ast.Expr
		wantLeft  ast.Expr
		wantRight ast.Expr
	}{
		{"add right", ast.NewAdd(k, v), v, ast.NewSub(r, k)},
		{"add left", ast.NewAdd(v, k), v, ast.NewSub(r, k)},
		{"mul right", ast.NewMul(k, v), v, ast.NewDiv(r, k)},
		{"mul left", ast.NewMul(v, k), v, ast.NewDiv(r, k)},
		{"sub right", ast.NewSub(k, v), v, ast.NewMul(ast.Constant{Value: -1}, ast.NewSub(r, k))},
		{"sub left", ast.NewSub(v, k), v, ast.NewAdd(r, k)},
		{"div left", ast.NewDiv(v, k), v, ast.NewMul(k, r)},
		{"div right", ast.NewDiv(k, v), ast.NewMul(v, r), k},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := SolveStep(NewEquation(tt.left, r))
			if err != nil {
				t.Fatalf("SolveStep() error = %v", err)
			}
			if !ast.Equal(next.Left, tt.wantLeft) || !ast.Equal(next.Right, tt.wantRight) {
				t.Errorf("SolveStep() = %s, want %s", next.Debug(), NewEquation(tt.wantLeft, tt.wantRight).Debug())
			}
		})
	}
}

func TestSolve_VariableOnRight(t *testing.T) {
	eq := parseEquation(t, "7=2x+3")

	_, err := Solve(eq, Options{})
	if !mdwerror.HasCode(err, mdwerror.CodeNoVariablePath) {
		t.Fatalf("Solve() error = %v, want NO_VARIABLE_PATH", err)
	}

	got, result := solveAndFormat(t, "7=2x+3", Options{SwapSides: true})
	if got != "x = 2" {
		t.Errorf("Solve() with swap = %q, want x = 2", got)
	}
	if result.Steps[0].Operation() != "swap sides" {
		t.Errorf("first step = %q, want swap sides", result.Steps[0].Operation())
	}
}

func TestSolve_NoVariable(t *testing.T) {
	_, err := Solve(parseEquation(t, "2+3=5"), Options{SwapSides: true})
	if !mdwerror.HasCode(err, mdwerror.CodeNoVariablePath) {
		t.Errorf("Solve() error = %v, want NO_VARIABLE_PATH", err)
	}
}

func TestSolve_OnStep(t *testing.T) {
	var seen []int
	_, err := Solve(parseEquation(t, "2x+3=7"), Options{OnStep: func(s Step) {
		seen = append(seen, s.Index)
	}})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("OnStep indexes = %v, want [1 2]", seen)
	}
}

func TestStepBudget(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"x=1", 0},
		{"2x+3=7", 2},
		{"10/x=2", 2},
		{"12/3/x=2", 4},
		{"2+3=5", 0},
	}

	for _, tt := range tests {
		if got := StepBudget(parseEquation(t, tt.input).Left); got != tt.want {
			t.Errorf("StepBudget(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestSolve_StepLimit(t *testing.T) {
	tests := []struct {
		input string
		limit int
	}{
		{"x+1=2", 1},
		{"2x+3=7", 2},
		{"10/x=2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			eq := parseEquation(t, tt.input)

			calls := 0
			stalled := func(e Equation) (Equation, Action, error) {
				calls++
				return e, Action{Undone: ast.Add, Side: ast.Left, Operand: ast.Constant{Value: 0}}, nil
			}

			var seen int
			result, err := solveWith(eq, Options{OnStep: func(Step) { seen++ }}, stalled)
			if err == nil {
				t.Fatalf("solveWith() = %+v, want error", result)
			}
			if !mdwerror.HasCode(err, mdwerror.CodeStepLimitExceeded) {
				t.Errorf("code = %s, want %s", mdwerror.GetCode(err), mdwerror.CodeStepLimitExceeded)
			}
			if calls != tt.limit+1 {
				t.Errorf("step calls = %d, want %d", calls, tt.limit+1)
			}
			if seen != calls {
				t.Errorf("OnStep calls = %d, want %d", seen, calls)
			}
		})
	}
}

func TestSolve_WithinBudget(t *testing.T) {
	for _, input := range []string{"x+1=2", "2x+3=7", "10/x=2", "12/3/x=2", "x=1"} {
		eq := parseEquation(t, input)
		result, err := solveWith(eq, Options{}, SolveStep)
		if err != nil {
			t.Fatalf("solveWith(%q) error = %v", input, err)
		}
		if len(result.Steps) > StepBudget(eq.Left) {
			t.Errorf("%q took %d steps, budget %d", input, len(result.Steps), StepBudget(eq.Left))
		}
	}
}

func TestFormat_Unsolved(t *testing.T) {
	eq := NewEquation(ast.Variable{Name: "x"}, ast.NewAdd(ast.Constant{Value: 1}, ast.Variable{Name: "y"}))

	got := Format(eq)
	if !strings.HasPrefix(got, UnsolvedPrefix) {
		t.Fatalf("Format() = %q, want diagnostic", got)
	}
	if !strings.Contains(got, "Addition(Constant(1), Variable(y))") {
		t.Errorf("Format() = %q, missing debug rendering", got)
	}
}

func TestAction_String(t *testing.T) {
	three := ast.Constant{Value: 3}
	tests := []struct {
		action Action
		want   string
	}{
		{Action{Undone: ast.Add, Operand: three}, "subtract 3"},
		{Action{Undone: ast.Sub, Side: ast.Left, Operand: three}, "add 3"},
		{Action{Undone: ast.Sub, Side: ast.Right, Operand: three}, "subtract from 3 and negate"},
		{Action{Undone: ast.Mul, Operand: three}, "divide by 3"},
		{Action{Undone: ast.Div, Side: ast.Left, Operand: three}, "multiply by 3"},
		{Action{Swap: true}, "swap sides"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
