package cmd

import (
	"github.com/spf13/cobra"

	"winctl/internal/control"
	"winctl/internal/model"
	"winctl/internal/output"
	"winctl/internal/platform"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a window via its close button",
	Long:  "Close a window through the accessibility layer, switching to its Space first when needed. The result is tagged with a reason on failure.",
	RunE:  runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
	closeCmd.Flags().Int("window-id", 0, "Target window by system ID")
	closeCmd.Flags().String("title", "", "Target window by title substring")
	closeCmd.Flags().String("app", "", "Target window by owning application name")
}

func runClose(cmd *cobra.Command, args []string) error {
	return runWindowAction(cmd, "close", func(ctrl *control.Controller, windowID int) (model.ActionResult, error) {
		return ctrl.CloseWindow(windowID)
	})
}

// runWindowAction is shared by close and focus: it resolves the target
// window from flags, runs the action, and prints the tagged result. State
// failures exit zero; only broken preconditions become command errors.
func runWindowAction(cmd *cobra.Command, action string, act func(*control.Controller, int) (model.ActionResult, error)) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	windowID, _ := cmd.Flags().GetInt("window-id")
	title, _ := cmd.Flags().GetString("title")
	app, _ := cmd.Flags().GetString("app")

	id, err := resolveWindowID(provider.Windows, windowID, title, app)
	if err != nil {
		return err
	}
	if id == 0 {
		failure := model.Fail(model.ReasonWindowNotFound)
		return output.Print(model.ActionResult{
			Action:  action,
			Title:   title,
			Reason:  failure.Reason,
			Message: failure.Message(),
			Remedy:  failure.Remedy(),
		})
	}

	ctrl := control.New(provider, log)
	result, err := act(ctrl, id)
	if err != nil {
		return err
	}
	return output.Print(result)
}
