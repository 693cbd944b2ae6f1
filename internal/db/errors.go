package db

import (
	"context"
	"errors"
	"net"
)

// ErrIndexRequired is returned when a query names no index.
var ErrIndexRequired = errors.New("db: index name is required")

// Op constants name engine operations for error context.
const (
	OpSearch      = "search"
	OpStats       = "stats"
	OpListIndexes = "list_indexes"
	OpHealth      = "health"
)

// Kind classifies a failure reported by the engine collaborator.
type Kind int

const (
	// KindInternal is an unclassified failure.
	KindInternal Kind = iota
	// KindRequest is an engine-side request or validation failure (bad filter, unknown field).
	KindRequest
	// KindCommunication means the engine could not be reached or timed out.
	KindCommunication
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindCommunication:
		return "communication"
	default:
		return "internal"
	}
}

// Error wraps an underlying error with the operation name and classification.
type Error struct {
	Op    string
	Index string
	Kind  Kind
	// Code is the engine's error code for KindRequest failures.
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Index != "" {
		return e.Op + " " + e.Index + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf classifies any error. Unwrapped context and network failures count as communication.
func KindOf(err error) Kind {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindCommunication
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindCommunication
	}
	return KindInternal
}

// CodeOf returns the engine error code carried by err, if any.
func CodeOf(err error) string {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return ""
}
