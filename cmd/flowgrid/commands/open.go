package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mfkiwl/flowgrid/internal/component"
)

var openCmd = &cobra.Command{
	Use:   "open <project-file>",
	Short: "Open a project and print its state",
	Long: `Open a .fls state snapshot or .fld/.flp action history and print the
flattened store contents at the resulting history position.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	RootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.handler.Open(a.reducer, args[0]); err != nil {
		return err
	}
	fmt.Printf("project: %s\n", a.handler.CurrentPath())
	fmt.Printf("history: %d record(s), index %d\n", a.reducer.HistoryLen(), a.reducer.HistoryIndex())
	return printState(a)
}

// printState dumps the flattened component tree, sorted by path for
// stable output.
func printState(a *app) error {
	flat, err := component.ToJSON(a.tree, a.reducer.Store())
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Printf("%s = %s\n", p, flat[p])
	}
	return nil
}
