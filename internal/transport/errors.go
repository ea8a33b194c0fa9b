package transport

import "fmt"

// ErrorKind classifies a failed tool invocation
type ErrorKind int

const (
	// ConnectionFailed covers network, DNS and TLS failures
	ConnectionFailed ErrorKind = iota
	// Timeout means no response arrived within the per-call budget
	Timeout
	// ProtocolError covers HTTP status >= 400 and malformed payloads
	ProtocolError
	// ToolError means the backend reported a domain-level failure
	ToolError
)

func (k ErrorKind) String() string {
	switch k {
	case ConnectionFailed:
		return "connection_failed"
	case Timeout:
		return "timeout"
	case ProtocolError:
		return "protocol_error"
	case ToolError:
		return "tool_error"
	default:
		return "unknown"
	}
}

// Retryable reports whether a second attempt could change the outcome.
// Protocol and tool errors are presumed deterministic and never retried.
func (k ErrorKind) Retryable() bool {
	return k == ConnectionFailed || k == Timeout
}

// Error is a classified tool invocation failure
type Error struct {
	Kind    ErrorKind
	Tool    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: tool %s: %s", e.Kind, e.Tool, e.Message)
}

func newError(kind ErrorKind, tool, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Tool: tool, Message: fmt.Sprintf(format, args...)}
}
