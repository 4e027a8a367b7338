// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcp serves a tool registry over the Model Context Protocol using
// newline-delimited JSON-RPC 2.0 on a reader/writer pair (normally stdio).
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/guardian-mcp/internal/tools"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// maxLineSize bounds a single request line.
const maxLineSize = 4 << 20

// Toolset is what the server exposes.
type Toolset interface {
	List() []tools.Tool
	Call(ctx context.Context, name string, args json.RawMessage) (string, error)
}

// Request is a JSON-RPC request or notification. ID is absent for
// notifications.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request expects no reply.
func (r *Request) IsNotification() bool { return len(r.ID) == 0 }

// Response is a JSON-RPC response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Content is one block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the tools/call result.
type CallResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Server handles requests one at a time.
type Server struct {
	Name    string
	Version string
	Tools   Toolset
	Logger  *slog.Logger
}

// Run reads requests from in and writes responses to out until in is
// exhausted or ctx is cancelled. On cancellation in is closed when it is an
// io.Closer so the reading goroutine is released; otherwise that goroutine
// stays blocked until in returns.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	scanDone := make(chan error, 1)
	go func() {
		for scanner.Scan() {
			if ctx.Err() != nil {
				scanDone <- ctx.Err()
				return
			}
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			resp := s.handleLine(ctx, line)
			if resp == nil {
				continue
			}
			if err := enc.Encode(resp); err != nil {
				scanDone <- fmt.Errorf("writing response: %w", err)
				return
			}
		}
		scanDone <- scanner.Err()
	}()

	select {
	case <-ctx.Done():
		if c, ok := in.(io.Closer); ok {
			_ = c.Close()
		}
		return ctx.Err()
	case err := <-scanDone:
		if err != nil {
			return fmt.Errorf("reading requests: %w", err)
		}
		return nil
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) *Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger().Warn("unparseable request", "error", err)
		return errorResponse(nil, CodeParseError, "Parse error", err.Error())
	}
	resp := s.HandleRequest(ctx, &req)
	if req.IsNotification() {
		return nil
	}
	return resp
}

// HandleRequest dispatches one request. It returns nil for notifications.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	log := s.logger()
	log.Debug("request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return result(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": s.Name, "version": s.Version},
		})
	case "notifications/initialized", "notifications/cancelled":
		return nil
	case "ping":
		return result(req.ID, map[string]any{})
	case "tools/list":
		return result(req.ID, map[string]any{"tools": s.Tools.List()})
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "":
		return errorResponse(req.ID, CodeInvalidRequest, "Invalid Request", nil)
	default:
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, CodeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	text, err := s.Tools.Call(ctx, params.Name, params.Arguments)
	var argErr *tools.ArgumentError
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return errorResponse(req.ID, CodeInvalidParams, "Unknown tool: "+params.Name, nil)
	case errors.As(err, &argErr):
		return result(req.ID, CallResult{Content: []Content{{Type: "text", Text: argErr.Error()}}, IsError: true})
	case err != nil:
		s.logger().Error("tool failed", "tool", params.Name, "error", err)
		return result(req.ID, CallResult{Content: []Content{{Type: "text", Text: "Error: " + err.Error()}}, IsError: true})
	}
	return result(req.ID, CallResult{Content: []Content{{Type: "text", Text: text}}})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func result(id json.RawMessage, v any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: v}
}

func errorResponse(id json.RawMessage, code int, msg string, data any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: msg, Data: data}}
}
