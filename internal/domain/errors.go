package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRegistered signals a duplicate registration.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrUnknownTool signals a tool name that is not registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments signals tool arguments that could not be decoded.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrIndexRequired signals a generic search without an index name.
	ErrIndexRequired = errors.New("index is required")
	// ErrAreasDisabled signals area-name discovery without configured indexes.
	ErrAreasDisabled = errors.New("area discovery is not configured")
)

// ArgumentError wraps ErrInvalidArguments with the offending argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArguments.Error(), e.Name, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArguments }

// NewArgumentError creates an invalid-argument error for one parameter.
func NewArgumentError(name, reason string) error {
	return &ArgumentError{Name: name, Reason: reason}
}
