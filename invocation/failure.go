package invocation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies why an invocation failed.
type Kind int

const (
	// UnknownCommand means the host has no command registered under the name.
	UnknownCommand Kind = iota + 1
	// HostExecutionFailure means the command was found but failed on the host.
	HostExecutionFailure
	// TransportFailure means the channel was unavailable, closed or returned a malformed reply.
	TransportFailure
	// SerializationFailure means the arguments could not be encoded; nothing was sent.
	SerializationFailure
)

func (k Kind) String() string {
	switch k {
	case UnknownCommand:
		return "UnknownCommand"
	case HostExecutionFailure:
		return "HostExecutionFailure"
	case TransportFailure:
		return "TransportFailure"
	case SerializationFailure:
		return "SerializationFailure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Failure is the failure variant of an invocation result.
type Failure struct {
	Kind    Kind
	Command string
	// Code and Data carry the host's JSON-RPC error, when there was one.
	Code    int
	Message string
	Data    json.RawMessage
	Err     error
}

var (
	ErrUnknownCommand = &Failure{Kind: UnknownCommand}
	ErrHostExecution  = &Failure{Kind: HostExecutionFailure}
	ErrTransport      = &Failure{Kind: TransportFailure}
	ErrSerialization  = &Failure{Kind: SerializationFailure}
)

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	}
	if f.Command == "" {
		return fmt.Sprintf("%v: %v", f.Kind, msg)
	}
	return fmt.Sprintf("%v: %v: %v", f.Command, f.Kind, msg)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches failures of the same kind, so errors.Is(err, ErrTransport) works.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

// NewFailure creates a failure of the given kind wrapping err.
func NewFailure(kind Kind, command string, err error) *Failure {
	ret := &Failure{Kind: kind, Command: command, Err: err}
	if err != nil {
		ret.Message = err.Error()
	}
	return ret
}

// AsFailure converts err into a Failure; errors that are not failures are
// treated as host execution failures.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return NewFailure(HostExecutionFailure, "", err)
}
