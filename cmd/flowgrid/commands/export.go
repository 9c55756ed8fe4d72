package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfkiwl/flowgrid/internal/project"
)

var (
	exportState   string
	exportActions string
)

var exportCmd = &cobra.Command{
	Use:   "export <project-file>",
	Short: "Export a project in both on-disk formats at once",
	Long: `Open a project and write both the .fls state snapshot and the .fld
action history, defaulting the output names to the source name with the
respective extension. The two files are serialized concurrently from the
same committed snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportState, "state", "", "State snapshot output path (default: <source>.fls)")
	exportCmd.Flags().StringVar(&exportActions, "actions", "", "Action history output path (default: <source>.fld)")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.handler.Open(a.reducer, args[0]); err != nil {
		return err
	}

	base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	statePath := exportState
	if statePath == "" {
		statePath = base + ".fls"
	}
	actionsPath := exportActions
	if actionsPath == "" {
		actionsPath = base + ".fld"
	}

	if err := project.SaveAll(a.reducer, statePath, actionsPath); err != nil {
		return err
	}
	fmt.Printf("state:   %s\nactions: %s\n", statePath, actionsPath)
	return nil
}
