// Package commands implements the flowgrid CLI: a headless driver for the
// action-reducer core, standing in for the GUI frontend that is out of
// scope here. Projects are opened, replayed, inspected, and re-exported
// entirely through the same action/reducer path the GUI would use.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfkiwl/flowgrid/internal/gridlog"
)

var (
	// Global flags
	verbose        bool
	defaultProject string
)

// RootCmd is the base command when flowgrid is called without subcommands.
var RootCmd = &cobra.Command{
	Use:   "flowgrid",
	Short: "FlowGrid project tool",
	Long: `flowgrid drives the FlowGrid action-reducer core from the command line:
open and inspect projects (.fls state snapshots or .fld/.flp action
histories), replay a history to any position, and convert between the
two on-disk formats.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			gridlog.Set(l)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	defer func() { _ = gridlog.Sync() }()
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	RootCmd.PersistentFlags().StringVar(&defaultProject, "default-project", "", "Project file targeted by open-default/save-default")
}
