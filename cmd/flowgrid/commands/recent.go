package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfkiwl/flowgrid/internal/project"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened projects",
	Long:  `Print the recent-projects list from .flowgrid/Preferences.flp, most recent first.`,
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	RootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	prefs, err := project.LoadPreferences()
	if err != nil {
		return err
	}
	if len(prefs.RecentProjects) == 0 {
		fmt.Println("no recent projects")
		return nil
	}
	for _, p := range prefs.RecentProjects {
		fmt.Println(p)
	}
	return nil
}
