// Package mcp exposes editor sessions to agents over the Model Context
// Protocol. Every placement verb is its own tool so an agent can discover
// the interaction grammar from the tool list alone.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
	"github.com/veldtlabs/breadboard/pkg/session"
	"github.com/veldtlabs/breadboard/pkg/tool"
)

// StateResult reports the session after an event, mirroring what a local UI
// would read back from the tool.
type StateResult struct {
	State          string `json:"state" jsonschema_description:"Current tool state"`
	Designator     string `json:"designator,omitempty" jsonschema_description:"Designator of the component being placed"`
	Pointer        string `json:"pointer" jsonschema_description:"Pointer position in millimeters"`
	ComponentCount int    `json:"component_count" jsonschema_description:"Components in the document"`
	PartCount      int    `json:"part_count" jsonschema_description:"Placed parts in the document"`
	CanUndo        bool   `json:"can_undo" jsonschema_description:"Whether undo is available"`
	CanRedo        bool   `json:"can_redo" jsonschema_description:"Whether redo is available"`
}

// SessionResult is the output of create_session.
type SessionResult struct {
	ID string `json:"id" jsonschema_description:"Session identifier"`
}

// Server wraps a session manager and catalog as an MCP server.
type Server struct {
	sessions  *session.Manager
	catalog   ports.Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server over editor sessions.
func NewServer(sessions *session.Manager, cat ports.Catalog, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		catalog:   cat,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("breadboard-mcp", strings.TrimSpace(breadboard.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new editor session with an empty document."),
		mcp.WithOutputSchema[SessionResult](),
	), mcp.NewStructuredToolHandler(s.handleCreateSession))

	s.mcpServer.AddTool(mcp.NewTool("close_session",
		mcp.WithDescription("Close an editor session, rolling back any pending placement."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
	), s.handleCloseSession)

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List the live editor sessions."),
	), s.handleListSessions)

	s.mcpServer.AddTool(mcp.NewTool("list_definitions",
		mcp.WithDescription("List the component definitions available for placement."),
	), s.handleListDefinitions)

	s.mcpServer.AddTool(mcp.NewTool("start_placement",
		mcp.WithDescription("Activate the placement tool for a definition. Placement stays active until abort or deactivate."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("definition", mcp.Required(), mcp.Description("Definition ID to place")),
		mcp.WithString("variant", mcp.Description("Variant ID (defaults to the definition's first variant)")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handleStartPlacement))

	s.mcpServer.AddTool(mcp.NewTool("pointer_move",
		mcp.WithDescription("Move the pointer, previewing the pending part at the new position."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("x", mcp.Required(), mcp.Description("X position in millimeters, e.g. \"10.0\"")),
		mcp.WithString("y", mcp.Required(), mcp.Description("Y position in millimeters")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handlePointerMove))

	s.mcpServer.AddTool(mcp.NewTool("primary_click",
		mcp.WithDescription("Finalize the pending part at the given position and advance the placement."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("x", mcp.Required(), mcp.Description("X position in millimeters")),
		mcp.WithString("y", mcp.Required(), mcp.Description("Y position in millimeters")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handlePrimaryClick))

	s.mcpServer.AddTool(mcp.NewTool("rotate",
		mcp.WithDescription("Rotate the pending part by 90 degrees."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("direction", mcp.Required(), mcp.Description("\"cw\" or \"ccw\"")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handleRotate))

	s.mcpServer.AddTool(mcp.NewTool("abort_placement",
		mcp.WithDescription("Abort the pending placement. The tool restarts with a fresh instance of the same definition."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handleAbort))

	s.mcpServer.AddTool(mcp.NewTool("deactivate_tool",
		mcp.WithDescription("Deactivate the placement tool, rolling back any pending part."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handleDeactivate))

	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the most recent committed action."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handleUndo))

	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the most recently undone action."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StateResult](),
	), mcp.NewStructuredToolHandler(s.handleRedo))

	s.mcpServer.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the document content: components and placed parts."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
	), s.handleGetDocument)

	s.mcpServer.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get the undo history with cursor position."),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID")),
	), s.handleGetHistory)
}

// Handler methods for structured tools

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	id, err := s.sessions.Create(ctx)
	if err != nil {
		return SessionResult{}, err
	}
	return SessionResult{ID: id.String()}, nil
}

func (s *Server) handleStartPlacement(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	definition, err := parseID(args, "definition")
	if err != nil {
		return StateResult{}, err
	}
	variant := uuid.Nil
	if raw, ok := args["variant"].(string); ok && raw != "" {
		if variant, err = uuid.Parse(raw); err != nil {
			return StateResult{}, domain.NewValidationError("variant id", "%q: %v", raw, err)
		}
	}
	return s.dispatch(ctx, args, tool.StartPlacement{Definition: definition, Variant: variant})
}

func (s *Server) handlePointerMove(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	pos, err := parsePoint(args)
	if err != nil {
		return StateResult{}, err
	}
	return s.dispatch(ctx, args, tool.PointerMove{Pos: pos})
}

func (s *Server) handlePrimaryClick(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	pos, err := parsePoint(args)
	if err != nil {
		return StateResult{}, err
	}
	return s.dispatch(ctx, args, tool.PrimaryClick{Pos: pos})
}

func (s *Server) handleRotate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	switch args["direction"] {
	case "cw":
		return s.dispatch(ctx, args, tool.RotateCW{})
	case "ccw":
		return s.dispatch(ctx, args, tool.RotateCCW{})
	default:
		return StateResult{}, domain.NewValidationError("direction", "want \"cw\" or \"ccw\", got %v", args["direction"])
	}
}

func (s *Server) handleAbort(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	return s.dispatch(ctx, args, tool.Abort{})
}

func (s *Server) handleDeactivate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	return s.dispatch(ctx, args, tool.Deactivate{})
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	return s.historyStep(ctx, args, (*breadboard.Editor).Undo)
}

func (s *Server) handleRedo(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	return s.historyStep(ctx, args, (*breadboard.Editor).Redo)
}

// Handler methods for text tools

func (s *Server) handleCloseSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := parseID(request.GetArguments(), "session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sessions.Close(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("session closed"), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.sessions.List())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListDefinitions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.definitionsJSON(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var text string
	err := s.withSession(ctx, request.GetArguments(), func(ctx context.Context, ed *breadboard.Editor) error {
		doc := ed.Document()
		payload := map[string]any{
			"name":       doc.Name,
			"components": doc.Components(),
			"parts":      doc.Parts(),
		}
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		text = string(jsonBytes)
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var text string
	err := s.withSession(ctx, request.GetArguments(), func(ctx context.Context, ed *breadboard.Editor) error {
		h := ed.History()
		payload := map[string]any{
			"descriptions": h.Descriptions(),
			"cursor":       h.Cursor(),
			"can_undo":     h.CanUndo(),
			"can_redo":     h.CanRedo(),
			"clean":        h.IsClean(),
		}
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		text = string(jsonBytes)
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("breadboard://definitions", "Component Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.definitionsJSON(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list definitions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "breadboard://definitions",
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

// -- Helpers --

func (s *Server) dispatch(ctx context.Context, args map[string]interface{}, ev tool.Event) (StateResult, error) {
	var out StateResult
	err := s.withSession(ctx, args, func(ctx context.Context, ed *breadboard.Editor) error {
		if err := ed.Handle(ctx, ev); err != nil {
			return err
		}
		out = stateResult(ed)
		return nil
	})
	return out, err
}

func (s *Server) historyStep(ctx context.Context, args map[string]interface{}, step func(*breadboard.Editor) error) (StateResult, error) {
	var out StateResult
	err := s.withSession(ctx, args, func(ctx context.Context, ed *breadboard.Editor) error {
		if err := step(ed); err != nil {
			return err
		}
		out = stateResult(ed)
		return nil
	})
	return out, err
}

func (s *Server) withSession(ctx context.Context, args map[string]interface{}, fn func(ctx context.Context, ed *breadboard.Editor) error) error {
	id, err := parseID(args, "session")
	if err != nil {
		return err
	}
	return s.sessions.With(ctx, id, fn)
}

func (s *Server) definitionsJSON(ctx context.Context) (string, error) {
	defs, err := s.catalog.List(ctx)
	if err != nil {
		return "", err
	}
	jsonBytes, err := json.Marshal(defs)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

func parseID(args map[string]interface{}, key string) (uuid.UUID, error) {
	raw, _ := args[key].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(key, "%q: %v", raw, err)
	}
	return id, nil
}

func parsePoint(args map[string]interface{}) (domain.Point, error) {
	x, _ := args["x"].(string)
	y, _ := args["y"].(string)

	px, err := domain.ParseMillimeters(x)
	if err != nil {
		return domain.Point{}, err
	}
	py, err := domain.ParseMillimeters(y)
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: px, Y: py}, nil
}

func stateResult(ed *breadboard.Editor) StateResult {
	return StateResult{
		State:          ed.Tool().State().String(),
		Designator:     ed.Tool().Designator(),
		Pointer:        ed.Tool().Pointer().String(),
		ComponentCount: ed.Document().ComponentCount(),
		PartCount:      ed.Document().PartCount(),
		CanUndo:        ed.History().CanUndo(),
		CanRedo:        ed.History().CanRedo(),
	}
}
