package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"winctl/internal/logger"
	"winctl/internal/output"
)

// log is the process-wide logger, configured by the root command.
var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "winctl",
	Short: "Inspect and control desktop windows and process trees",
	Long:  "A CLI for listing and filtering windows, closing and focusing them through the accessibility layer, and inspecting or terminating process trees.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml or json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debug, _ := rootCmd.PersistentFlags().GetBool("debug")
		log = logger.New(debug)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		// Piped output defaults to JSON for machine consumers; a terminal
		// gets YAML.
		if format == "" {
			if output.IsOutputPiped() {
				format = "json"
			} else {
				format = "yaml"
			}
		}
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}

		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
