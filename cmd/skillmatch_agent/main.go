// Package main provides the entry point for the SkillMatch certification
// assistant: an HTTP API server plus one-shot CLI commands for CV analysis.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillmatch_agent",
	Short: "SkillMatch CV analysis and certification recommendation service",
	Long:  "SkillMatch extracts structured career records from uploaded CVs and recommends certifications from a configurable catalog under user-defined business rules, via REST API or one-shot CLI runs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
