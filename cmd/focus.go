package cmd

import (
	"github.com/spf13/cobra"

	"winctl/internal/control"
	"winctl/internal/model"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window to the foreground",
	Long:  "Focus a window by making it its application's main window, activating the owning process, and raising it.",
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().Int("window-id", 0, "Target window by system ID")
	focusCmd.Flags().String("title", "", "Target window by title substring")
	focusCmd.Flags().String("app", "", "Target window by owning application name")
}

func runFocus(cmd *cobra.Command, args []string) error {
	return runWindowAction(cmd, "focus", func(ctrl *control.Controller, windowID int) (model.ActionResult, error) {
		return ctrl.FocusWindow(windowID)
	})
}
