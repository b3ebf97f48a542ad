package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidchat-dev/vidchat-cli/internal/adapters/driving/mcp"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driving"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [transcript]",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

With a transcript argument, the transcript is ingested at startup.
Without one, the previously persisted index is restored.

By default, the server communicates over stdio using JSON-RPC and can be
used with MCP-compatible AI assistants. Use --port to start an HTTP
server instead.

Examples:
  # Serve the persisted index over stdio
  vidchat mcp serve

  # Ingest a transcript and serve it over HTTP
  vidchat mcp serve talk.en.vtt --port 8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if services == nil || services.Assistant == nil {
		return errors.New("assistant service not configured")
	}

	ctx := cmd.Context()

	session, err := sessionForServe(cmd, args)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Session: session})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// sessionForServe builds the session the MCP tools operate on: a fresh
// ingest when a transcript is given, the persisted index otherwise.
func sessionForServe(cmd *cobra.Command, args []string) (driving.Session, error) {
	ctx := cmd.Context()

	if len(args) == 1 {
		text, err := loadTranscript(ctx, args[0])
		if err != nil {
			return nil, err
		}
		session, err := services.Assistant.Ingest(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("ingest failed: %w", err)
		}
		return session, nil
	}

	session, err := services.Assistant.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore failed: %w", err)
	}
	return session, nil
}
