package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"mcpgithub/server/internal/jsonrpc"
)

type echoProcessor struct{}

func (echoProcessor) ProcessRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	if req.ID == nil {
		return nil
	}
	if req.Method == "boom" {
		panic("kaboom")
	}
	return &jsonrpc.Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]any{"method": req.Method, "request_id": GetRequestID(ctx)},
	}
}

func TestServeStdio(t *testing.T) {
	in := strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n" +
			`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
			"not json\n" +
			`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")
	var out bytes.Buffer

	if err := ServeStdio(context.Background(), echoProcessor{}, in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var responses []jsonrpc.Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp jsonrpc.Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("output line is not JSON: %v", err)
		}
		responses = append(responses, resp)
	}

	// ping response, parse error, tools/list response. The notification
	// produces nothing.
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}

	if responses[0].Error != nil {
		t.Errorf("ping should succeed: %+v", responses[0].Error)
	}
	result := responses[0].Result.(map[string]any)
	if result["request_id"] == "" {
		t.Error("request should carry a generated request ID")
	}

	if responses[1].Error == nil || responses[1].Error.Code != jsonrpc.ParseError {
		t.Errorf("expected parse error, got %+v", responses[1])
	}

	if responses[2].Error != nil {
		t.Errorf("tools/list should succeed: %+v", responses[2].Error)
	}
}

func TestServeStdioRecoversPanics(t *testing.T) {
	in := strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"boom"}` + "\n" +
			`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n")
	var out bytes.Buffer

	if err := ServeStdio(context.Background(), echoProcessor{}, in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}

	var first jsonrpc.Response
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first.Error == nil || first.Error.Code != jsonrpc.InternalError {
		t.Errorf("panic should answer with internal error, got %+v", first)
	}

	var second jsonrpc.Response
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if second.Error != nil {
		t.Errorf("server should keep serving after a panic: %+v", second.Error)
	}
}

func TestRequestIDMiddlewareHelpers(t *testing.T) {
	id := NewRequestID()
	if len(id) != 32 {
		t.Errorf("request ID length = %d, want 32 hex chars", len(id))
	}

	ctx := WithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("GetRequestID = %q", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("empty context should yield empty ID, got %q", got)
	}
}
