package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"

	"github.com/kherge/dev/internal/model"
)

// defaultPingTimeout is the maximum duration to wait for a Docker daemon
// response during a Ping operation. 5 seconds is generous enough for most
// environments, including Docker Desktop on macOS which can be slower
// than native Linux Docker.
const defaultPingTimeout = 5 * time.Second

// EngineAPI is the part of the Docker Engine API this tool calls.
// *client.Client satisfies it; tests substitute a fake.
type EngineAPI interface {
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error)
	NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Inspect, error)
	NetworkRemove(ctx context.Context, networkID string) error

	VolumeCreate(ctx context.Context, options volume.CreateOptions) (volume.Volume, error)
	VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error)
	VolumeInspect(ctx context.Context, volumeID string) (volume.Volume, error)
	VolumeRemove(ctx context.Context, volumeID string, force bool) error

	Ping(ctx context.Context) (types.Ping, error)
	Close() error
}

var _ EngineAPI = (*client.Client)(nil)

// ClientOptions tune how a default client is constructed.
type ClientOptions struct {
	// Host overrides DOCKER_HOST when non-empty (e.g. "unix:///run/docker.sock").
	Host string
}

// GetClient returns api unchanged when it is non-nil. Otherwise it builds a
// client from the ambient environment with NewClient. The CLI calls this
// once at startup and injects the result into the managers.
func GetClient(ctx context.Context, api EngineAPI, opts ClientOptions) (EngineAPI, error) {
	if api != nil {
		return api, nil
	}
	return NewClient(ctx, opts)
}

// NewClient creates a Docker client from environment-derived settings and
// verifies that the daemon answers a ping.
//
// The host is resolved in this order:
//  1. opts.Host, when set
//  2. DOCKER_HOST, handled by the SDK's FromEnv option together with
//     DOCKER_TLS_VERIFY, DOCKER_CERT_PATH and DOCKER_API_VERSION
//  3. The first existing platform socket (see detectDockerHost)
//  4. The SDK default
//
// Returns a model.CLIError with ExitDockerNotRunning if the client cannot be
// created or the daemon does not respond.
func NewClient(ctx context.Context, opts ClientOptions) (*client.Client, error) {
	clientOpts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}

	host := opts.Host
	if host == "" && os.Getenv(client.EnvOverrideHost) == "" {
		// Detection failure is not fatal: the SDK default may still work,
		// and Ping reports a useful error if it doesn't.
		if detected, err := detectDockerHost(); err == nil {
			host = detected
		}
	}
	if host != "" {
		clientOpts = append(clientOpts, client.WithHost(host))
	}

	c, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to create Docker client",
			err,
		)
	}

	if err := ping(ctx, c); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// ping verifies that the Docker daemon is reachable and responsive,
// waiting up to defaultPingTimeout.
func ping(ctx context.Context, api EngineAPI) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := api.Ping(pingCtx); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker daemon is not responding; is Docker running?",
			err,
		)
	}
	return nil
}

// detectDockerHost determines the Docker socket for the current platform.
// It probes known socket paths and returns the first one that exists.
//
// We check for socket file existence rather than attempting a connection;
// ping handles connectivity.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket(socketCandidates(""))

	case "darwin":
		// Newer Docker Desktop versions may only create the socket under
		// the user's home directory.
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return detectUnixSocket(socketCandidates(""))
		}
		return detectUnixSocket(socketCandidates(homeDir))

	default:
		// Windows named pipes are the SDK default already.
		return "", fmt.Errorf("no socket detection for platform %s", runtime.GOOS)
	}
}

// socketCandidates lists the Unix socket paths to probe, most-preferred
// first. homeDir adds the per-user Docker Desktop location when non-empty.
func socketCandidates(homeDir string) []string {
	paths := []string{"/var/run/docker.sock"}
	if homeDir != "" {
		paths = append(paths, homeDir+"/.docker/run/docker.sock")
	}
	return paths
}

// detectUnixSocket probes a list of Unix socket paths and returns the
// Docker host URI for the first socket that exists on the filesystem.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf(
		"Docker socket not found at any of: %v; is Docker running?",
		paths,
	)
}
