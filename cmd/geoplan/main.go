// Command geoplan runs the floor-plan geometry pipeline against an input
// drawing document and reports per-stage outcomes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "geoplan",
	Short: "geoplan extracts wall and door geometry from floor-plan drawings",
	Long: `geoplan runs a deterministic, content-hashed geometry pipeline over an
extracted floor-plan drawing document: layer extraction, coordinate
normalization, dedup, wall-candidate detection, rectangle refinement, and
door assignment, persisting each stage's artifact as it completes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(runCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("geoplan %s\n", Version)
	},
}
