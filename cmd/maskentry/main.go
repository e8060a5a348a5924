// Maskentry edits text through input masks.
//
// A mask such as "0000-00-00" splits a value into fields separated by fixed
// literals. The terminal editor keeps the value conforming to its mask while
// the user types, moves between fields with tab, and deletes. The same
// editing engine can be served to remote clients over WebSocket.
//
// Usage:
//
//	maskentry [command] [flags]
//
// Running without arguments opens the interactive editor.
// See 'maskentry --help' for available commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/maskentry/internal/logging"
	"github.com/muurk/maskentry/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// reportedError wraps an error the command already printed in full.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "maskentry",
	Short: "Masked text entry for the terminal",
	Long: `Edit text through input masks.

Mask syntax: 0 digit, L ASCII letter, & any letter, a or A letter or
digit. Any other character is a literal separator that is kept in place.

If no command is specified, the interactive editor will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the editor when no subcommand is given
		return runEdit(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error); defaults to $"+logging.LogLevelEnvVar)

	addEditFlags(rootCmd)

	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(versionCmd)
}

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(versionFormat); err != nil {
			return err
		}
		info := version.Get()
		if versionFormat == "json" {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "maskentry %s (%s)\n", version.Full(), info.GoVersion)
		return nil
	},
}
