package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/cli"
	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/adapters/mcp"
	"github.com/veldtlabs/breadboard/pkg/session"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the editor as an MCP Server.
This allows AI agents (like Claude Desktop) to place components, undo and
redo through tools instead of a pointer.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		catalogDir, _ := cmd.Flags().GetString("catalog")
		if !cmd.Flags().Changed("catalog") && len(args) > 0 {
			catalogDir = args[0]
		}

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		redisURL, _ := cmd.Flags().GetString("redis-url")
		maxSessions, _ := cmd.Flags().GetInt("max-sessions")

		// Configure logger. Stdout carries JSON-RPC, so logs go to stderr.
		logger := logging.New(slog.LevelDebug)
		slog.SetDefault(logger)

		cat, err := cli.BuildCatalog(catalogDir, redisURL, 0, logger)
		if err != nil {
			log.Fatalf("Error opening catalog: %v", err)
		}

		factory := func(id uuid.UUID) (*breadboard.Editor, error) {
			return breadboard.New(cat,
				breadboard.WithLogger(logger),
				breadboard.WithDocumentName("session-"+id.String()[:8]))
		}
		sessions := session.NewManager(factory,
			session.WithLogger(logger),
			session.WithMaxSessions(maxSessions))

		srv := mcp.NewServer(sessions, cat, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Breadboard MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Breadboard MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("redis-url", "", "Redis URL for catalog caching (optional)")
	mcpCmd.Flags().Int("max-sessions", 64, "Maximum number of live sessions (0 = unlimited)")
}
