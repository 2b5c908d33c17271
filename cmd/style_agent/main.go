// Package main provides the entry point for the style transfer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "style_agent",
	Short: "Content style transfer pipeline",
	Long:  "style_agent rewrites target content in the voice of reference writing styles, producing platform-shaped outputs (tweets, threads, LinkedIn posts, blog posts) with optional multi-dimensional evaluation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
