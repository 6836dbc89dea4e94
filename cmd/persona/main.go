// Command persona calcula perfiles y reportes de lectura desde la terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "persona",
	Short:        "Reading persona scoring and report tool",
	Long:         "Scores onboarding preferences into a five-trait profile, resolves the reader persona and assembles the full report without a database.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
