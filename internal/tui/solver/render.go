package solver

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
)

// RenderSteps renders a solved equation with its derivation
func RenderSteps(resp *service.SolveResponse) string {
	var b strings.Builder

	b.WriteString(InputStyle.Render(resp.Equation))
	b.WriteString("\n")

	for _, step := range resp.Steps {
		b.WriteString(RenderStep(step))
		b.WriteString("\n")
	}

	b.WriteString(RenderResult(resp))
	return b.String()
}

// RenderStep renders a single step line
func RenderStep(step service.StepView) string {
	return fmt.Sprintf("%s %s%s  %s",
		StepIndexStyle.Render(fmt.Sprintf("%d.", step.Index)),
		IconArrow,
		StepEquationStyle.Render(step.Equation),
		StepOperationStyle.Render("("+step.Operation+")"),
	)
}

// RenderResult renders the final line of a solve
func RenderResult(resp *service.SolveResponse) string {
	line := UnsolvedStyle.Render(resp.Output)
	if resp.Solved {
		line = ResultStyle.Render(IconResult + resp.Output)
	}
	if resp.Cached {
		line += " " + CachedStyle.Render("(cache)")
	}
	return line
}

// RenderError renders a failed solve
func RenderError(err error) string {
	line := ErrorStyle.Render(IconError + "Fehler: " + err.Error())
	if code := mdwerror.GetCode(err); code != mdwerror.CodeUnknown {
		line += " " + ErrorCodeStyle.Render("["+string(code)+"]")
	}
	return line
}
