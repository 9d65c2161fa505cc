package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"winctl/internal/model"
	"winctl/internal/output"
	"winctl/internal/platform"
	"winctl/internal/watcher"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Show or watch OS permission state",
	Long:  "Report the screen recording and accessibility permission flags once, or poll them with --watch until interrupted.",
	RunE:  runPermissions,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.Flags().Bool("watch", false, "Poll the flags until interrupted")
	permissionsCmd.Flags().Duration("interval", 2*time.Second, "Polling interval for --watch")
	permissionsCmd.Flags().Bool("changes-only", false, "With --watch, emit only when a flag changed")
}

func runPermissions(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return output.Print(checkOnce(provider.Permissions))
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	changesOnly, _ := cmd.Flags().GetBool("changes-only")

	w := watcher.New(provider.Permissions, log)
	w.Start(interval, changesOnly, func(state model.PermissionState) {
		if err := output.Print(state); err != nil {
			log.Error().Err(err).Msg("failed to print permission snapshot")
		}
	})
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// checkOnce reads both flags outside the watcher lifecycle.
func checkOnce(perms platform.Permissions) model.PermissionState {
	state := model.PermissionState{Timestamp: time.Now(), Changed: true}
	if ax, err := perms.AccessibilityTrusted(); err == nil {
		state.Accessibility = &ax
	}
	if sr, err := perms.ScreenRecordingGranted(); err == nil {
		state.ScreenRecording = &sr
	}
	return state
}
