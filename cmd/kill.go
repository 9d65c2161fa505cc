package cmd

import (
	"github.com/spf13/cobra"

	"winctl/internal/model"
	"winctl/internal/output"
)

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Terminate a process or its whole tree",
	Long:  "Terminate a process cooperatively (or with --force, immediately). With --tree, children are terminated before their parents and failures are aggregated rather than aborting the run.",
	RunE:  runKill,
}

func init() {
	rootCmd.AddCommand(killCmd)
	killCmd.Flags().Int("pid", 0, "Process ID to terminate")
	killCmd.Flags().Bool("tree", false, "Terminate the process and all its descendants, children first")
	killCmd.Flags().Bool("force", false, "Force termination (immediate signal)")
	killCmd.MarkFlagRequired("pid")
}

func runKill(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	tree, _ := cmd.Flags().GetBool("tree")
	force, _ := cmd.Flags().GetBool("force")

	mgr := newProcManager()

	if tree {
		result, err := mgr.TerminateTree(pid, force)
		if err != nil {
			return err
		}
		return output.Print(result)
	}

	outcome := mgr.Terminate(pid, force)
	return output.Print(model.TreeResult{OK: outcome.OK, Outcomes: []model.TerminateOutcome{outcome}})
}
