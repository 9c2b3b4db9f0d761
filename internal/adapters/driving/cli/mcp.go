package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ask the
music agent and browse the library.

Tools:      ask_music, find_tracks
Resources:  jukebox://tracks, jukebox://tracks/{trackId}

By default the server communicates over stdio. Use --port to serve the
streamable HTTP transport instead.

Examples:
  # Stdio mode (for desktop assistants)
  jukebox mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  jukebox mcp serve --port 8090

Desktop assistant configuration:
  {
    "mcpServers": {
      "jukebox": {
        "command": "/path/to/jukebox",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Agent:   agentService,
		Library: libraryService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
