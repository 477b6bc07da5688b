// Package mcpserver exposes the pipeline as MCP tools over stdio, so another
// agent can hand user turns to the persona.
package mcpserver

import (
	"context"
	"encoding/json"
	stdlog "log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/memory"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

const defaultUserID = "mcp-client"

type Conversation interface {
	Context(sessionID, userID string) core.DialogueContext
	SubmitUserTurn(ctx context.Context, text string, dc core.DialogueContext) string
	Snapshot(sessionID string) memory.Snapshot
	Clear(ctx context.Context, sessionID, userID string) error
}

type Server struct {
	conv Conversation
	mcp  *server.MCPServer
}

func New(conv Conversation) *Server {
	s := &Server{
		conv: conv,
		mcp: server.NewMCPServer(
			core.TuskName,
			core.TuskVersion,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}

	s.mcp.AddTool(mcp.NewTool("submit_turn",
		mcp.WithDescription("Send one user message to the persona and get its reply"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation to append to")),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the user said")),
		mcp.WithString("user_id", mcp.Description("Owner of the carried tone")),
	), s.handleSubmit)

	s.mcp.AddTool(mcp.NewTool("snapshot",
		mcp.WithDescription("Emotional summary of the session's recent user turns"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation to inspect")),
	), s.handleSnapshot)

	s.mcp.AddTool(mcp.NewTool("clear",
		mcp.WithDescription("Forget the session's memory and the user's carried tone"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation to reset")),
		mcp.WithString("user_id", mcp.Description("Owner of the carried tone")),
	), s.handleClear)

	return s
}

// Start serves stdin/stdout until ctx is done. Logging must not go to stdout.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting mcp stdio server")

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(logger, "", 0))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) handleSubmit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	userID := req.GetString("user_id", defaultUserID)

	reply := s.conv.SubmitUserTurn(ctx, text, s.conv.Context(sessionID, userID))
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) handleSnapshot(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body, err := json.Marshal(s.conv.Snapshot(sessionID))
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) handleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	userID := req.GetString("user_id", defaultUserID)

	if err := s.conv.Clear(ctx, sessionID, userID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("cleared"), nil
}
