// Package commands implements the CLI commands for the xdrdump tool.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/marmos91/xdrwire/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xdrdump",
	Short: "Inspect raw XDR byte streams",
	Long: `xdrdump reads RFC 4506 XDR byte streams from a file or stdin and
prints their contents in human-readable form.

XDR streams carry no type tags, so the tool offers one view per wire
shape: a word-by-word listing, and primitive decodes at a chosen offset.

Use "xdrdump [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		format, _ := cmd.Flags().GetString("log-format")
		cfg := logger.Config{Level: "INFO", Format: format}
		if verbose {
			cfg.Level = "DEBUG"
		}
		logger.Init(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text|json)")
}

// readInput loads the stream named by args: a file path, or stdin when args
// is empty or names "-".
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
