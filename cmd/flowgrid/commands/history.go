package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <project-file>",
	Short: "List a project's committed gestures",
	Long: `Open a .fld/.flp action history and list every committed gesture: its
position, commit time, and the merge-collapsed actions it recorded. The
current history index is marked with '*'.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.handler.Open(a.reducer, args[0]); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, " \tINDEX\tCOMMITTED\tACTIONS")
	for i := 0; i < a.reducer.HistoryLen(); i++ {
		rec, ok := a.reducer.HistoryRecord(i)
		if !ok {
			continue
		}
		marker := " "
		if i == a.reducer.HistoryIndex() {
			marker = "*"
		}
		names := make([]string, 0, len(rec.Gesture.Actions))
		for _, qa := range rec.Gesture.Actions {
			names = append(names, qa.Action.Metadata().DisplayName)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", marker, i,
			rec.Gesture.CommitTime.Format("2006-01-02 15:04:05"),
			strings.Join(names, ", "))
	}
	return w.Flush()
}
