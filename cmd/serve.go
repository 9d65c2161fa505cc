package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server exposing window and process control tools",
	Long:  "Serve the window enumeration, close/focus, and process-tree operations as MCP tools over stdio or streamable HTTP.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio or streamable-http")
	serveCmd.Flags().Int("port", 8732, "Port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	cfg := MCPConfig{
		Transport: transport,
		Port:      port,
	}

	s, err := newMCPServer(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("transport", transport).Msg("starting MCP server")
	start := time.Now()
	err = s.serve(cfg)
	log.Info().Dur("uptime", time.Since(start)).Msg("MCP server stopped")
	return err
}
