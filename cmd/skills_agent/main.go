// Package main provides the entry point for the jobskills CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skills_agent",
	Short: "Job-posting skill extraction pipeline",
	Long:  "skills_agent extracts, classifies, and normalizes skill and tool mentions from raw job-posting text into a deduplicated, confidence-scored skill set.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
