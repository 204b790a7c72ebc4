package cmd

import (
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/tui/solver"
	"github.com/msto63/khwarizmi/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	replSteps  bool
	replRemote string
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"tui", "interactive"},
	Short:   "Startet den interaktiven Modus",
	Long: `Startet eine interaktive Terminal-UI zum Lösen von Gleichungen.

Tastenkuerzel:
  Enter       Gleichung lösen
  ↑/↓         Frühere Eingaben
  Ctrl+S      Lösungsweg ein/aus
  Ctrl+L      Verlauf leeren
  PgUp/PgDn   Scrollen
  Esc         Beenden

Befehle:
  :steps      Lösungsweg ein/aus
  :clear      Verlauf leeren
  :q          Beenden`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVarP(&replSteps, "steps", "s", true, "Lösungsweg anzeigen")
	replCmd.Flags().StringVar(&replRemote, "remote", "", "Adresse eines khwarizmi gRPC-Servers")
}

func runREPL(cmd *cobra.Command, args []string) error {
	b, err := openBackend(replRemote, service.SourceREPL)
	if err != nil {
		return err
	}
	defer b.Close()

	return solver.Run(solver.Config{
		Solve:     b.Solve,
		ShowSteps: replSteps,
		Version:   version.Engine,
	})
}
