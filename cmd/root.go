package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tasklistfewer application
var rootCmd = &cobra.Command{
	Use:   "tasklistfewer",
	Short: "Removes obsolete tasklist fences from GitHub issues",
	Long: `tasklistfewer is a tool that rewrites GitHub issue bodies that still
contain the deprecated ` + "```[tasklist]" + ` fenced blocks, unwrapping the fences
while keeping the task items themselves.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tasklistfewer version %s\n" .Version}}`)

	// If no subcommand is provided, run the fix command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "fix")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
