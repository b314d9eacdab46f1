package modules

import "fmt"

// ErrorKind is the closed set of failure categories a tool call can produce.
type ErrorKind int

const (
	// KindMissingParam covers absent or rejected caller input, including
	// values that fail sanitization.
	KindMissingParam ErrorKind = iota

	// KindNotFound means the addressed repository, file, or ref does not
	// exist upstream.
	KindNotFound

	// KindUnauthenticated means the upstream rejected our credentials (or
	// their absence). The caller must supply credentials out-of-band; the
	// server never retries or prompts.
	KindUnauthenticated

	// KindUpstream is any other upstream API failure, including rate limits.
	KindUpstream

	// KindOther is everything else.
	KindOther
)

// ToolError is the single error type that crosses the dispatch boundary.
// It is constructed at the failure site and translated into a JSON-RPC error
// exactly once, by the MCP handler.
type ToolError struct {
	Kind    ErrorKind
	Message string
}

func (e *ToolError) Error() string {
	switch e.Kind {
	case KindMissingParam:
		return "Missing required parameter: " + e.Message
	case KindNotFound:
		return "Repository not found: " + e.Message
	case KindUnauthenticated:
		return "Authentication required"
	case KindUpstream:
		return "GitHub API error: " + e.Message
	default:
		return e.Message
	}
}

// ClientError reports whether the caller could fix the failure by changing
// the request. Everything else requires an operator (bad token, upstream
// outage) and is classified as internal.
func (e *ToolError) ClientError() bool {
	switch e.Kind {
	case KindMissingParam, KindNotFound, KindUnauthenticated:
		return true
	default:
		return false
	}
}

// MissingParamf builds a KindMissingParam error naming the offending field.
func MissingParamf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindMissingParam, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated builds a KindUnauthenticated error.
func Unauthenticated() *ToolError {
	return &ToolError{Kind: KindUnauthenticated}
}

// Upstreamf builds a KindUpstream error carrying the upstream detail string.
func Upstreamf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindUpstream, Message: fmt.Sprintf(format, args...)}
}

// Otherf builds a KindOther error.
func Otherf(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindOther, Message: fmt.Sprintf(format, args...)}
}
