package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/barline/internal/cli"
	"github.com/example/barline/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "barline",
		Short:   "barline - per-measure practice confidence tracker",
		Version: version.String(),
		Long: `barline tracks practice confidence for every measure of a piece of sheet
music, keeping a full history of how each measure improved over time.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SongCmd())
	rootCmd.AddCommand(cli.MeasureCmd())
	rootCmd.AddCommand(cli.SessionCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
