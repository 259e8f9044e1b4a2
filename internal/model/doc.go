// Package model defines the domain types and value objects for the
// dev CLI.
//
// This package contains pure data structures with no external dependencies.
// Network and Volume are transient projections of Docker objects built from
// Engine API responses; the Docker daemon owns all storage.
//
// The package also defines the Lookup result used to classify a by-name
// lookup, the NotManagedError raised for resources the tool does not own,
// and exit codes (ExitCode) carried by CLIError.
package model
