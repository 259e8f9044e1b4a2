package model

import (
	"fmt"
	"strings"
)

// ResourceKind names the type of Docker object a command operates on.
// It appears verbatim in user-facing messages such as the not-managed error.
type ResourceKind string

const (
	// KindNetwork identifies Docker networks.
	KindNetwork ResourceKind = "network"

	// KindVolume identifies Docker volumes.
	KindVolume ResourceKind = "volume"
)

// String returns the string representation of ResourceKind.
func (k ResourceKind) String() string {
	return string(k)
}

// Title returns the kind with its first letter upper-cased, for messages
// like "Network created.".
func (k ResourceKind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Network is the subset of a Docker network that this tool consumes.
// Values are built from Docker API responses at runtime; nothing is
// persisted locally.
type Network struct {
	// ID is the engine-assigned network identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the unique network name.
	Name string `json:"name" yaml:"name"`

	// Driver is the network driver (always "host" for networks we create).
	Driver string `json:"driver" yaml:"driver"`

	// Scope is the network scope reported by the engine.
	Scope string `json:"scope" yaml:"scope"`

	// CreatedAt is the creation timestamp, RFC 3339 formatted.
	CreatedAt string `json:"createdAt" yaml:"createdAt"`

	// Labels is the full label set of the network. A nil map means the
	// engine reported no labels at all.
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Volume is the subset of a Docker volume that this tool consumes.
type Volume struct {
	// Name is the unique volume name.
	Name string `json:"name" yaml:"name"`

	// Driver is the volume driver (always "local" for volumes we create).
	Driver string `json:"driver" yaml:"driver"`

	// Mountpoint is the host path backing the volume.
	Mountpoint string `json:"mountpoint,omitempty" yaml:"mountpoint,omitempty"`

	// CreatedAt is the creation timestamp exactly as the engine reports it.
	CreatedAt string `json:"createdAt" yaml:"createdAt"`

	// Labels is the full label set of the volume.
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// LookupState classifies the outcome of looking a resource up by name.
type LookupState int

const (
	// LookupAbsent means the engine has no resource with the name.
	LookupAbsent LookupState = iota

	// LookupFound means the resource exists and carries the managed label.
	LookupFound

	// LookupUnmanaged means a resource with the name exists but is not
	// owned by this tool.
	LookupUnmanaged
)

// String returns a short, log-friendly name for the state.
func (s LookupState) String() string {
	switch s {
	case LookupAbsent:
		return "absent"
	case LookupFound:
		return "found"
	case LookupUnmanaged:
		return "unmanaged"
	default:
		return fmt.Sprintf("LookupState(%d)", int(s))
	}
}

// Lookup is the result of finding a resource by name. Resource is only
// meaningful when State is LookupFound.
type Lookup[T any] struct {
	State    LookupState
	Kind     ResourceKind
	Name     string
	Resource T
}

// Found builds a Lookup holding a managed resource.
func Found[T any](kind ResourceKind, name string, resource T) Lookup[T] {
	return Lookup[T]{State: LookupFound, Kind: kind, Name: name, Resource: resource}
}

// Absent builds a Lookup for a name the engine does not know.
func Absent[T any](kind ResourceKind, name string) Lookup[T] {
	return Lookup[T]{State: LookupAbsent, Kind: kind, Name: name}
}

// Unmanaged builds a Lookup for a resource that exists but lacks the
// managed label.
func Unmanaged[T any](kind ResourceKind, name string) Lookup[T] {
	return Lookup[T]{State: LookupUnmanaged, Kind: kind, Name: name}
}

// Err returns a *NotManagedError for unmanaged lookups and nil otherwise.
func (l Lookup[T]) Err() error {
	if l.State == LookupUnmanaged {
		return &NotManagedError{Kind: l.Kind, Name: l.Name}
	}
	return nil
}

// NotManagedError reports an attempt to operate on a Docker object that
// exists but was not created by this tool.
type NotManagedError struct {
	Kind ResourceKind
	Name string
}

// Error satisfies the error interface. The format is part of the CLI
// contract and must not change.
func (e *NotManagedError) Error() string {
	return fmt.Sprintf("Docker %s object, %s, is not managed.", e.Kind, e.Name)
}

// ExitCode defines the process exit codes used by the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error, including errors
	// returned by the Docker Engine for a request it rejected.
	ExitGeneralError ExitCode = 1

	// ExitNotManaged indicates the named resource exists but is not
	// managed by this tool.
	ExitNotManaged ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitNotFound indicates the named resource does not exist.
	ExitNotFound ExitCode = 4

	// ExitInvalidConfig indicates the configuration could not be loaded.
	ExitInvalidConfig ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
