// Package main provides the entry point for the resume studio CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	userIDFlag  string
	cachePath   string
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "Resume Studio template customization engine",
	Long:  "Resume Studio renders resumes through customizable templates, persists per-user template settings offline-first and exports print-ready PDFs.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVarP(&userIDFlag, "user-id", "u", "", "User ID owning the template configurations")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Path to the local cache file")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "Database URL for remote replication (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
