package provider

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindConnection covers spawn and connect failures.
	KindConnection Kind = iota
	// KindTimeout means the per-server deadline expired.
	KindTimeout
	// KindProtocol covers handshake and listing failures after a
	// connection was established.
	KindProtocol
	// KindUnsupported means the transport type is not recognized.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindTimeout:
		return "timeout"
	case KindProtocol:
		return "protocol error"
	case KindUnsupported:
		return "unsupported transport"
	default:
		return "provider error"
	}
}

// Error is a typed failure talking to one MCP server. Failures are
// per-server and potentially recoverable: the orchestrator decides
// whether to continue or abort.
type Error struct {
	Server string
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: server %q: %v", e.Kind, e.Server, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr classifies err for the given server, upgrading it to a
// timeout when the context deadline expired.
func wrapErr(server string, kind Kind, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Server: server, Kind: kind, Err: err}
}
