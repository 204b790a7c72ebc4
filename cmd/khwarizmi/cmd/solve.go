package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/tui/solver"
	"github.com/spf13/cobra"
)

var (
	solveSteps   bool
	solveJSON    bool
	solveRemote  string
	solveTimeout time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve <gleichung>",
	Short: "Löst eine lineare Gleichung",
	Long: `Löst eine lineare Gleichung mit genau einer Variablen.

Mehrere Argumente werden mit Leerzeichen verbunden, damit
Gleichungen auch ohne Anführungszeichen angegeben werden können.

Beispiele:
  khwarizmi solve "2x+3=7"
  khwarizmi solve 10/x=2 --steps
  khwarizmi solve "5-x=10" --json
  khwarizmi solve "3x=9" --remote localhost:9160`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().BoolVarP(&solveSteps, "steps", "s", false, "Lösungsweg anzeigen")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Ergebnis als JSON ausgeben")
	solveCmd.Flags().StringVar(&solveRemote, "remote", "", "Adresse eines khwarizmi gRPC-Servers")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 10*time.Second, "Timeout für die Anfrage")
}

func runSolve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, "Missing input")
		return nil
	}

	b, err := openBackend(solveRemote, service.SourceCLI)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), solveTimeout)
	defer cancel()

	resp, err := b.Solve(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	switch {
	case solveJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case solveSteps:
		fmt.Fprintln(out, solver.RenderSteps(resp))
	default:
		fmt.Fprintln(out, resp.Output)
	}
	return nil
}
