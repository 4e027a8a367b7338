// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/guardian-mcp/internal/tools"
)

type fakeTools struct {
	calls []string
}

func (f *fakeTools) List() []tools.Tool {
	return []tools.Tool{{Name: "echo", Description: "Echo", InputSchema: tools.Schema{Type: "object"}}}
}

func (f *fakeTools) Call(_ context.Context, name string, args json.RawMessage) (string, error) {
	f.calls = append(f.calls, name)
	switch name {
	case "echo":
		return "echo " + string(args), nil
	case "bad":
		return "", &tools.ArgumentError{Msg: "Invalid arguments: query is required"}
	case "boom":
		return "", errors.New("context canceled")
	default:
		return "", fmt.Errorf("%w: %s", tools.ErrUnknownTool, name)
	}
}

// exchange runs the server over the given request lines and decodes every
// response line.
func exchange(t *testing.T, lines ...string) ([]map[string]any, *fakeTools) {
	t.Helper()
	ft := &fakeTools{}
	s := &Server{Name: "guardian", Version: "1.0.0", Tools: ft}

	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))

	var resps []map[string]any
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		resps = append(resps, m)
	}
	return resps, ft
}

func TestInitializeAndList(t *testing.T) {
	resps, _ := exchange(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":"two","method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	)
	require.Len(t, resps, 3, "notifications get no reply")

	res := resps[0]["result"].(map[string]any)
	assert.Equal(t, float64(1), resps[0]["id"])
	assert.Equal(t, ProtocolVersion, res["protocolVersion"])
	assert.Equal(t, map[string]any{"name": "guardian", "version": "1.0.0"}, res["serverInfo"])

	assert.Equal(t, "two", resps[1]["id"])
	list := resps[1]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "echo", list[0].(map[string]any)["name"])
	assert.Contains(t, list[0].(map[string]any), "inputSchema")

	assert.Equal(t, map[string]any{}, resps[2]["result"])
}

func TestToolsCall(t *testing.T) {
	resps, ft := exchange(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"q":"<b>"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"bad","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"missing"}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"boom"}}`,
	)
	require.Len(t, resps, 4)
	assert.Equal(t, []string{"echo", "bad", "missing", "boom"}, ft.calls)

	ok := resps[0]["result"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"type": "text", "text": `echo {"q":"<b>"}`}}, ok["content"])
	assert.NotContains(t, ok, "isError")

	bad := resps[1]["result"].(map[string]any)
	assert.Equal(t, true, bad["isError"])
	assert.Equal(t, "Invalid arguments: query is required", bad["content"].([]any)[0].(map[string]any)["text"])

	unknown := resps[2]["error"].(map[string]any)
	assert.Equal(t, float64(CodeInvalidParams), unknown["code"])
	assert.Equal(t, "Unknown tool: missing", unknown["message"])

	failed := resps[3]["result"].(map[string]any)
	assert.Equal(t, true, failed["isError"])
}

func TestProtocolErrors(t *testing.T) {
	resps, _ := exchange(t,
		`{not json`,
		``,
		`{"jsonrpc":"2.0","id":7,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","method":"notifications/unknown"}`,
		`{"jsonrpc":"2.0","id":8,"method":"tools/call","params":"oops"}`,
	)
	require.Len(t, resps, 3)

	assert.Nil(t, resps[0]["id"])
	assert.Equal(t, float64(CodeParseError), resps[0]["error"].(map[string]any)["code"])

	assert.Equal(t, float64(7), resps[1]["id"])
	assert.Equal(t, float64(CodeMethodNotFound), resps[1]["error"].(map[string]any)["code"])

	assert.Equal(t, float64(CodeInvalidParams), resps[2]["error"].(map[string]any)["code"])
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Server{Tools: &fakeTools{}}
	r, w := io.Pipe()
	defer w.Close()
	err := s.Run(ctx, r, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"))
	assert.ErrorIs(t, err, io.ErrClosedPipe, "input is closed on cancellation")
}
