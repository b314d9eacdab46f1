package middleware

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"runtime/debug"

	"mcpgithub/server/internal/jsonrpc"
	"mcpgithub/server/internal/observability"
)

// maxLineSize bounds a single stdio message (base64 file contents can be
// large).
const maxLineSize = 10 * 1024 * 1024

// ServeStdio reads newline-delimited JSON-RPC requests from in and writes
// responses to out, one per line. It returns when in is exhausted or ctx is
// canceled.
func ServeStdio(ctx context.Context, processor RequestProcessor, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonrpc.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(jsonrpc.Response{
				JSONRPC: "2.0",
				Error:   &jsonrpc.Error{Code: jsonrpc.ParseError, Message: "Parse error"},
			}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := processStdioRequest(ctx, processor, &req)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// processStdioRequest runs one request with its own request ID and panic
// recovery. A panic answers the request instead of killing the process.
func processStdioRequest(ctx context.Context, processor RequestProcessor, req *jsonrpc.Request) (resp *jsonrpc.Response) {
	requestID := NewRequestID()
	ctx = WithRequestID(ctx, requestID)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC recovered: %v\n%s", r, debug.Stack())
			observability.LogError(requestID, "panic_recovered", "panic during request processing")
			if req.ID != nil {
				resp = &jsonrpc.Response{
					JSONRPC: "2.0",
					ID:      req.ID,
					Error:   &jsonrpc.Error{Code: jsonrpc.InternalError, Message: "internal error"},
				}
			}
		}
	}()

	return processor.ProcessRequest(ctx, req)
}
