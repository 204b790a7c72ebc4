package solver

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
)

func fakeSolve(ctx context.Context, input string) (*service.SolveResponse, error) {
	if input == "bad" {
		return nil, mdwerror.New("equation has no '='").WithCode(mdwerror.CodeNoEqualsSign)
	}
	value := 2.0
	return &service.SolveResponse{
		Input:    input,
		Equation: "(2 * x) + 3 = 7",
		Output:   "x = 2",
		Variable: "x",
		Value:    &value,
		Solved:   true,
		Steps: []service.StepView{
			{Index: 1, Operation: "subtract 3", Equation: "2 * x = 7 - 3"},
			{Index: 2, Operation: "divide by 2", Equation: "x = (7 - 3) / 2"},
		},
	}, nil
}

func newTestModel(showSteps bool) Model {
	m := New(Config{Solve: fakeSolve, ShowSteps: showSteps, Version: "1.0.0"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func submit(t *testing.T, m Model, input string) Model {
	t.Helper()

	m.input.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		return m
	}

	msg := cmd()
	if _, ok := msg.(solvedMsg); !ok {
		return m
	}
	updated, _ = m.Update(msg)
	return updated.(Model)
}

func TestModel_Solve(t *testing.T) {
	m := submit(t, newTestModel(false), "2x+3=7")

	if len(m.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(m.entries))
	}
	if m.solving {
		t.Error("solving should be reset")
	}

	content := m.renderEntries()
	if !strings.Contains(content, "x = 2") {
		t.Errorf("content missing result: %q", content)
	}
	if strings.Contains(content, "subtract 3") {
		t.Error("steps should be hidden")
	}
	if m.solvedCount() != 1 {
		t.Errorf("solvedCount() = %d, want 1", m.solvedCount())
	}
}

func TestModel_StepsToggle(t *testing.T) {
	m := submit(t, newTestModel(false), "2x+3=7")
	m = submit(t, m, ":steps")

	if !m.showSteps {
		t.Fatal(":steps should enable steps")
	}
	if !strings.Contains(m.renderEntries(), "subtract 3") {
		t.Error("steps should be shown")
	}
	if len(m.entries) != 1 {
		t.Errorf("commands must not add entries, got %d", len(m.entries))
	}
}

func TestModel_Error(t *testing.T) {
	m := submit(t, newTestModel(false), "bad")

	content := m.renderEntries()
	if !strings.Contains(content, "Fehler") || !strings.Contains(content, "NO_EQUALS_SIGN") {
		t.Errorf("content = %q", content)
	}
}

func TestModel_Recall(t *testing.T) {
	m := submit(t, newTestModel(false), "x=1")
	m = submit(t, m, "x=2")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.input.Value() != "x=2" {
		t.Errorf("first recall = %q, want x=2", m.input.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.input.Value() != "x=1" {
		t.Errorf("second recall = %q, want x=1", m.input.Value())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if m.input.Value() != "" {
		t.Errorf("recall past the end = %q, want empty", m.input.Value())
	}
}

func TestModel_Clear(t *testing.T) {
	m := submit(t, newTestModel(false), "x=1")
	m = submit(t, m, ":clear")

	if len(m.entries) != 0 {
		t.Errorf("entries = %d after :clear", len(m.entries))
	}
}

func TestRenderSteps(t *testing.T) {
	resp, _ := fakeSolve(context.Background(), "2x+3=7")
	out := RenderSteps(resp)

	for _, want := range []string{"(2 * x) + 3 = 7", "1.", "2 * x = 7 - 3", "divide by 2", "x = 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSteps() missing %q in %q", want, out)
		}
	}

	resp.Cached = true
	if !strings.Contains(RenderResult(resp), "cache") {
		t.Error("cached result should be marked")
	}
}

func TestRenderError(t *testing.T) {
	if out := RenderError(errors.New("boom")); strings.Contains(out, "UNKNOWN") {
		t.Errorf("plain errors carry no code: %q", out)
	}
}
