package cmd

import (
	"github.com/spf13/cobra"

	"winctl/internal/output"
	"winctl/internal/platform"
	"winctl/internal/proctree"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List the children of a process",
	Long:  "List the direct children of a process from a fresh process-table snapshot, or the whole descendant tree with --tree.",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
	psCmd.Flags().Int("pid", 0, "Parent process ID")
	psCmd.Flags().Bool("tree", false, "Recurse into grandchildren")
	psCmd.MarkFlagRequired("pid")
}

// psEntry is one row of ps output; Depth shows tree nesting.
type psEntry struct {
	PID     int    `yaml:"pid"               json:"pid"`
	PPID    int    `yaml:"ppid"              json:"ppid"`
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
	Depth   int    `yaml:"depth,omitempty"   json:"depth,omitempty"`
}

func runPs(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	tree, _ := cmd.Flags().GetBool("tree")

	mgr := newProcManager()

	entries := []psEntry{}
	var collect func(pid, depth int) error
	collect = func(pid, depth int) error {
		children, err := mgr.Children(pid)
		if err != nil {
			return err
		}
		for _, c := range children {
			entries = append(entries, psEntry{PID: c.PID, PPID: c.PPID, Command: c.Command, Depth: depth})
			if tree {
				if err := collect(c.PID, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := collect(pid, 1); err != nil {
		return err
	}
	return output.Print(entries)
}

// newProcManager wires the process manager with the running-application
// registry when the platform provides one.
func newProcManager() *proctree.Manager {
	var apps platform.AppController
	if provider, err := platform.NewProvider(); err == nil {
		apps = provider.Apps
	}
	return proctree.New(apps, log)
}
