package cmd

import (
	"github.com/spf13/cobra"

	"winctl/internal/model"
	"winctl/internal/output"
	"winctl/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows with optional filters",
	Long:  "List on-screen windows with their id, title, owning app, PID, bounds, and layer. All filters combine with logical AND.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("title", "", "Filter by exact window title")
	listCmd.Flags().String("title-contains", "", "Filter by title substring")
	listCmd.Flags().String("title-wildcard", "", "Filter by title wildcard pattern (* and ?)")
	listCmd.Flags().String("app", "", "Filter by owning application name")
	listCmd.Flags().Int("pid", 0, "Filter by owning process ID")
	listCmd.Flags().Int("window-id", 0, "Filter by window ID")
	listCmd.Flags().Int("layer", -1, "Filter by window layer (0 = normal app windows)")
	listCmd.Flags().Bool("on-screen", false, "Only windows currently on screen")
	listCmd.Flags().Bool("case-sensitive", false, "Case-sensitive string matching")
	listCmd.Flags().Bool("all", false, "Include windows with empty titles")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	titleContains, _ := cmd.Flags().GetString("title-contains")
	titleWildcard, _ := cmd.Flags().GetString("title-wildcard")
	app, _ := cmd.Flags().GetString("app")
	pid, _ := cmd.Flags().GetInt("pid")
	windowID, _ := cmd.Flags().GetInt("window-id")
	layer, _ := cmd.Flags().GetInt("layer")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	all, _ := cmd.Flags().GetBool("all")

	var onScreen *bool
	if v, _ := cmd.Flags().GetBool("on-screen"); v {
		onScreen = &v
	}

	filter, err := buildFilter(title, titleContains, titleWildcard, app, caseSensitive, windowID, pid, layer, onScreen)
	if err != nil {
		return err
	}

	// Without screen recording permission the OS blanks every window title,
	// which silently breaks title filters.
	if granted, perr := provider.Permissions.ScreenRecordingGranted(); perr == nil && !granted {
		failure := model.Fail(model.ReasonScreenRecordingDenied)
		log.Warn().Str("remedy", failure.Remedy()).Msg(failure.Message())
	}

	windows, err := provider.Windows.ListWindows(platform.ListOptions{IncludeUntitled: all})
	if err != nil {
		return err
	}

	return output.Print(filter.Apply(windows))
}
