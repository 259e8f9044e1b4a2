// Package docker provides Docker Engine API wrappers for the dev CLI.
//
// This package handles:
//   - Docker client provisioning, either an injected EngineAPI or one built
//     from the environment with automatic socket detection
//   - The managed-label convention that marks networks and volumes as
//     owned by this tool (Docker labels are the only state it keeps)
//   - Network and volume lifecycle: create, list, inspect, remove
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
