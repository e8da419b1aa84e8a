// Package main provides the entry point for the arachne CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arachne.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arachne",
		Short: "Polite concurrent web crawler",
		Long: `Arachne is a polite, concurrent web crawler.

It walks a site breadth-first from one or more seed URLs, deduplicates
pages, respects robots.txt and per-host rate limits, and reports the
pages it found as text, JSON, or Markdown.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
