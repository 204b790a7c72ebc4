package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/internal/khwarizmi/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyJSON   bool
	historyRemote string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt die zuletzt gelösten Gleichungen",
	Long: `Zeigt die zuletzt gelösten Gleichungen, neueste zuerst.

Der Verlauf wird in einer SQLite-Datenbank gespeichert
(history.path, default: ./data/history.db).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Anzahl der Einträge (default: history.limit)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Ausgabe als JSON")
	historyCmd.Flags().StringVar(&historyRemote, "remote", "", "Adresse eines khwarizmi gRPC-Servers")
}

func runHistory(cmd *cobra.Command, args []string) error {
	b, err := openBackend(historyRemote, service.SourceCLI)
	if err != nil {
		return err
	}
	defer b.Close()

	entries, err := b.History(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		if entries == nil {
			entries = []*store.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "Noch keine Gleichungen gelöst.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ZEIT\tSTATUS\tGLEICHUNG\tERGEBNIS\tSCHRITTE")
	for _, e := range entries {
		result := e.Output
		if e.Status == store.StatusFailed {
			result = e.ErrorCode
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Status,
			e.Input,
			result,
			e.Steps,
		)
	}
	return w.Flush()
}
