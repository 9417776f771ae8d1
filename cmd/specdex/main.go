package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/specdex/specdex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "specdex",
	Short: "Catalog specification search and comparison engine",
	Long: `specdex indexes catalog records with structured specifications and
serves text search, numeric range filtering and side-by-side comparison.

Available commands:
  serve  - Start the HTTP API server
  import - Import a dataset file (JSON, CSV or XLSX) into the catalog
  export - Export the catalog as JSON or CSV`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
}

func init() {
	// .env is optional; real deployments configure via the environment
	_ = godotenv.Load()

	rootCmd.AddCommand(serveCmd, importCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
