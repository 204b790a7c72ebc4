package main

import (
	"fmt"
	"os"

	"github.com/msto63/khwarizmi/cmd/khwarizmi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
		os.Exit(1)
	}
}
